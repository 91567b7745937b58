// Package vectorstore defines the documentation vector-store backend and the
// way hits from several queries are folded into one block of text.
package vectorstore

import (
	"context"
	"strings"
)

// DefaultTopK is the number of hits requested per query.
const DefaultTopK = 3

// Backend runs several short queries against one namespace and returns the
// combined text of the hits. apiKey is the credential for backends that need
// one per request; others ignore it.
type Backend interface {
	MultiQuery(ctx context.Context, queries []string, namespace, apiKey string) (string, error)
}

// BackendFunc adapts a function to Backend.
type BackendFunc func(ctx context.Context, queries []string, namespace, apiKey string) (string, error)

func (f BackendFunc) MultiQuery(ctx context.Context, queries []string, namespace, apiKey string) (string, error) {
	return f(ctx, queries, namespace, apiKey)
}

// Hit is one document returned for a query.
type Hit struct {
	ID   string
	Text string
}

// Aggregate joins the text of hits with a blank line, in order, keeping the
// first occurrence of every document id. Hits without text are skipped.
func Aggregate(perQuery ...[]Hit) string {
	seen := make(map[string]struct{})
	var parts []string
	for _, hits := range perQuery {
		for _, h := range hits {
			if strings.TrimSpace(h.Text) == "" {
				continue
			}
			if h.ID != "" {
				if _, dup := seen[h.ID]; dup {
					continue
				}
				seen[h.ID] = struct{}{}
			}
			parts = append(parts, h.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
