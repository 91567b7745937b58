// Package openai classifies text with an OpenAI chat model.
//
// Labels are enumerated by index in the prompt and the model answers with
// the index of its choice. A reply that is not a valid index is returned
// verbatim so the caller's membership check rejects it.
//
//	c := openai.New(openai.GPT4oMini(option.WithAPIKey(key)))
//	label, err := c.Classify(ctx, "retry a failed task", labels)
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/casualjim/docbot/classify"
	"github.com/casualjim/docbot/pkg/slogx"
	"github.com/openai/openai-go"
)

const instructions = `You are an expert classifier. Read the text and choose the label that best describes it.
Respond with the integer index of the chosen label and nothing else.`

var _ classify.Classifier = (*Classifier)(nil)

// Classifier is a classify.Classifier backed by a chat completion.
type Classifier struct {
	model *Model
	log   *slog.Logger
}

// New returns a classifier using model.
func New(model *Model) *Classifier {
	return &Classifier{
		model: model,
		log:   slog.Default().With(slogx.LoggerName("docbot.classify.openai"), slog.String("model", model.Name())),
	}
}

func (c *Classifier) Classify(ctx context.Context, text string, labels []string) (string, error) {
	if len(labels) == 0 {
		return "", classify.ErrNoLabels
	}

	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instructions),
			openai.UserMessageParts(openai.TextPart(prompt(text, labels))),
		}),
		Model:       openai.F(c.model.Name()),
		N:           openai.Int(1),
		Temperature: openai.Float(0),
	}

	chat, err := c.model.Client().Chat.Completions.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "classification request failed", slogx.Error(err))
		return "", fmt.Errorf("classify: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("classify: model %s returned no choices", c.model.Name())
	}

	reply := strings.TrimSpace(chat.Choices[0].Message.Content)
	label, ok := labelFor(reply, labels)
	if !ok {
		c.log.WarnContext(ctx, "model reply is not a label index", slog.String("reply", reply))
	}
	return label, nil
}

func prompt(text string, labels []string) string {
	var b strings.Builder
	b.WriteString("Text:\n")
	b.WriteString(text)
	b.WriteString("\n\nLabels:\n")
	for i, l := range labels {
		fmt.Fprintf(&b, "%d: %s\n", i, l)
	}
	return b.String()
}

func labelFor(reply string, labels []string) (string, bool) {
	idx, err := strconv.Atoi(strings.Trim(reply, " .\"'`"))
	if err != nil || idx < 0 || idx >= len(labels) {
		return reply, false
	}
	return labels[idx], true
}
