// Package codeexample finds the Prefect code example closest to a request.
//
// The example repository publishes a JSON manifest of categorized examples.
// The request text is classified against the example descriptions and the
// matching file is returned together with its link.
package codeexample

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/casualjim/docbot/classify"
	"github.com/casualjim/docbot/internal/httpx"
	"github.com/casualjim/docbot/pkg/slogx"
)

const (
	// DefaultBaseURL is the raw content root of the example repository.
	DefaultBaseURL = "https://raw.githubusercontent.com/zzstoatzz/prefect-code-examples/main"
	// ManifestPath is the manifest location relative to the base URL.
	ManifestPath = "views/README.json"
)

// ErrClassificationMismatch is returned when the classifier answers with a
// label that is not one of the manifest descriptions.
var ErrClassificationMismatch = errors.New("classifier returned an unknown example")

// Retriever fetches the manifest, picks an example and downloads it.
type Retriever struct {
	client     httpx.Client
	baseURL    string
	classifier classify.Classifier
	log        *slog.Logger
}

// New creates a Retriever. An empty baseURL selects DefaultBaseURL.
func New(client httpx.Client, baseURL string, classifier classify.Classifier, log *slog.Logger) *Retriever {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Retriever{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		classifier: classifier,
		log:        log.With(slogx.LoggerName("docbot.codeexample")),
	}
}

// ManifestURL returns the manifest location.
func (r *Retriever) ManifestURL() string {
	return r.baseURL + "/" + ManifestPath
}

// Get returns the example best matching relatedTo, formatted as
// "LINK:\n<url>\n\nEXAMPLE:\n<content>".
func (r *Retriever) Get(ctx context.Context, relatedTo string) (string, error) {
	data, err := httpx.GetBytes(ctx, r.client, r.ManifestURL(), nil)
	if err != nil {
		return "", fmt.Errorf("fetch example manifest: %w", err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return "", fmt.Errorf("decode example manifest: %w", err)
	}

	items := manifest.Flatten(r.log)
	if items.Len() == 0 {
		return "", fmt.Errorf("example manifest is empty: %w", classify.ErrNoLabels)
	}

	key, err := r.classifier.Classify(ctx, relatedTo, Descriptions(items))
	if err != nil {
		return "", err
	}
	path, ok := items.Get(key)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrClassificationMismatch, key)
	}

	link := r.baseURL + "/" + path
	r.log.DebugContext(ctx, "selected example", slog.String("description", key), slog.String("url", link))

	content, err := httpx.GetText(ctx, r.client, link)
	if err != nil {
		return "", fmt.Errorf("fetch example: %w", err)
	}
	return Format(link, content), nil
}

// Format renders an example with its link.
func Format(link, content string) string {
	return "LINK:\n" + link + "\n\nEXAMPLE:\n" + content
}
