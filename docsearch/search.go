// Package docsearch searches the versioned Prefect documentation corpora.
package docsearch

import (
	"context"
	"errors"

	"github.com/casualjim/docbot/secret"
	"github.com/casualjim/docbot/vectorstore"
)

// Namespace names one documentation corpus in the vector store.
type Namespace string

const (
	// Prefect2 is the Prefect 2.x documentation corpus.
	Prefect2 Namespace = "prefect-2"
	// Prefect3 is the Prefect 3.x documentation corpus.
	Prefect3 Namespace = "prefect-3"
)

// DefaultSecretName is the secret holding the vector-store API key.
const DefaultSecretName = "tpuf-api-key"

// ErrEmptyQueries is returned when Search is called without queries.
var ErrEmptyQueries = errors.New("at least one query is required")

// Searcher delegates queries to a vector-store backend, attaching the
// process-wide credential.
type Searcher struct {
	backend    vectorstore.Backend
	credential *secret.Lazy
}

// New creates a Searcher.
func New(backend vectorstore.Backend, credential *secret.Lazy) *Searcher {
	return &Searcher{backend: backend, credential: credential}
}

// Search runs queries against namespace and returns the backend's text as is.
// The credential is resolved on first use; errors are returned unchanged.
func (s *Searcher) Search(ctx context.Context, queries []string, namespace Namespace) (string, error) {
	if len(queries) == 0 {
		return "", ErrEmptyQueries
	}

	apiKey, err := s.credential.Get(ctx)
	if err != nil {
		return "", err
	}
	return s.backend.MultiQuery(ctx, queries, string(namespace), apiKey)
}

// ForNamespace binds Search to one namespace.
func (s *Searcher) ForNamespace(namespace Namespace) func(context.Context, []string) (string, error) {
	return func(ctx context.Context, queries []string) (string, error) {
		return s.Search(ctx, queries, namespace)
	}
}
