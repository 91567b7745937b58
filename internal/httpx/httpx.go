// Package httpx holds the plain request helpers shared by the tools.
package httpx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response is kept in a StatusError.
const maxErrorBody = 512

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Client is the subset of *http.Client the helpers need.
type Client interface {
	Do(*http.Request) (*http.Response, error)
}

// GetBytes issues a GET for url bound to ctx and returns the body.
// A nil client means http.DefaultClient.
func GetBytes(ctx context.Context, client Client, url string, header http.Header) ([]byte, error) {
	return Send(ctx, client, http.MethodGet, url, header, nil)
}

// Send issues a request bound to ctx and returns the response body.
// Responses outside 2xx are reported as *StatusError.
func Send(ctx context.Context, client Client, method, url string, header http.Header, body io.Reader) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(b)}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return b, nil
}

// GetText is GetBytes for text documents.
func GetText(ctx context.Context, client Client, url string) (string, error) {
	b, err := GetBytes(ctx, client, url, nil)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
