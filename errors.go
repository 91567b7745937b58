package docbot

import (
	"errors"

	"github.com/casualjim/docbot/classify"
	"github.com/casualjim/docbot/codeexample"
	"github.com/casualjim/docbot/docsearch"
	"github.com/casualjim/docbot/releasenotes"
	"github.com/casualjim/docbot/secret"
	"github.com/casualjim/docbot/topic"
)

// Errors returned by the tools. Upstream HTTP failures surface as
// *httpx.StatusError wrapped in context.
var (
	ErrNoBackend              = errors.New("docbot: a vector store backend is required")
	ErrInvalidTopic           = topic.ErrInvalidTopic
	ErrMalformedDocument      = releasenotes.ErrMalformedDocument
	ErrClassificationMismatch = codeexample.ErrClassificationMismatch
	ErrEmptyQueries           = docsearch.ErrEmptyQueries
	ErrNoLabels               = classify.ErrNoLabels
	ErrSecretNotFound         = secret.ErrNotFound
)
