// Package releasenotes extracts the newest section of the Prefect release notes.
package releasenotes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/casualjim/docbot/internal/httpx"
	"github.com/casualjim/docbot/pkg/slogx"
)

// DefaultURL is the canonical location of the Prefect release notes.
const DefaultURL = "https://raw.githubusercontent.com/PrefectHQ/prefect/main/RELEASE-NOTES.md"

// Delimiter separates release sections in the document.
const Delimiter = "\n## "

// ErrMalformedDocument is returned when the document has fewer than two
// section delimiters, so no complete latest section can be isolated.
var ErrMalformedDocument = errors.New("release notes: malformed document")

// Fetcher downloads the release notes and returns the latest section.
type Fetcher struct {
	client httpx.Client
	url    string
	log    *slog.Logger
}

// New creates a Fetcher. An empty url selects DefaultURL and a nil client
// selects http.DefaultClient.
func New(client httpx.Client, url string, log *slog.Logger) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		client: client,
		url:    url,
		log:    log.With(slogx.LoggerName("docbot.releasenotes")),
	}
}

// URL returns the document location.
func (f *Fetcher) URL() string {
	return f.url
}

// Latest fetches the document and returns the text between the first and
// second section delimiters. The heading text is kept at its start.
func (f *Fetcher) Latest(ctx context.Context) (string, error) {
	body, err := httpx.GetText(ctx, f.client, f.url)
	if err != nil {
		f.log.ErrorContext(ctx, "fetching release notes failed", slogx.Error(err))
		return "", fmt.Errorf("fetch release notes: %w", err)
	}
	return Section(body)
}

// Section extracts the latest release section from a release notes body.
func Section(body string) (string, error) {
	parts := strings.Split(body, Delimiter)
	if len(parts) < 3 {
		return "", fmt.Errorf("%w: found %d section delimiters, need 2", ErrMalformedDocument, len(parts)-1)
	}
	return parts[1], nil
}
