// Package classify picks the label that best matches a piece of text.
package classify

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// ErrNoLabels is returned when Classify is called with an empty label set.
var ErrNoLabels = errors.New("classify: no labels")

// Classifier chooses one of labels for text. Implementations may return a
// string outside labels when the underlying model misbehaves; callers check
// membership.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (string, error)
}

// Func adapts a function to Classifier.
type Func func(ctx context.Context, text string, labels []string) (string, error)

func (f Func) Classify(ctx context.Context, text string, labels []string) (string, error) {
	return f(ctx, text, labels)
}

// minWordLen drops short words that would subsequence-match nearly anything.
const minWordLen = 3

// Keyword is an offline classifier. Every word of the text is fuzzy-matched
// against the labels; labels are ranked by how many words matched, then by
// summed match score. Ties go to the earlier label.
type Keyword struct{}

func (Keyword) Classify(ctx context.Context, text string, labels []string) (string, error) {
	if len(labels) == 0 {
		return "", ErrNoLabels
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lowered := make([]string, len(labels))
	for i, l := range labels {
		lowered[i] = strings.ToLower(l)
	}

	hits := make([]int, len(labels))
	scores := make([]int, len(labels))
	for _, word := range words(text) {
		for _, m := range fuzzy.Find(word, lowered) {
			hits[m.Index]++
			scores[m.Index] += m.Score
		}
	}

	best := 0
	for i := 1; i < len(labels); i++ {
		if hits[i] > hits[best] || (hits[i] == hits[best] && scores[i] > scores[best]) {
			best = i
		}
	}
	return labels[best], nil
}

func words(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= minWordLen {
			out = append(out, f)
		}
	}
	return out
}
