package docbot

import (
	"log/slog"

	"github.com/casualjim/docbot/classify"
	"github.com/casualjim/docbot/internal/httpx"
	"github.com/casualjim/docbot/secret"
	"github.com/casualjim/docbot/vectorstore"
	"github.com/fogfish/opts"
)

// Option configures a Toolkit.
type Option = opts.Option[Toolkit]

var (
	// WithBackend sets the vector store used by the documentation search tools.
	WithBackend = opts.ForName[Toolkit, vectorstore.Backend]("backend")
	// WithSecretSource sets where the vector store credential is fetched from.
	WithSecretSource = opts.ForName[Toolkit, secret.Source]("secretSource")
	// WithCredential supplies an already constructed credential. It takes
	// precedence over WithSecretSource and WithSecretName.
	WithCredential = opts.ForName[Toolkit, *secret.Lazy]("credential")
	// WithSecretName sets the name of the vector store credential.
	WithSecretName = opts.ForName[Toolkit, string]("secretName")
	// WithHTTPClient sets the client for release notes and code examples.
	WithHTTPClient = opts.ForName[Toolkit, httpx.Client]("httpClient")
	// WithClassifier sets the classifier that picks code examples.
	WithClassifier = opts.ForName[Toolkit, classify.Classifier]("classifier")
	// WithReleaseNotesURL overrides the release notes location.
	WithReleaseNotesURL = opts.ForName[Toolkit, string]("releaseNotesURL")
	// WithExamplesBaseURL overrides the code example repository root.
	WithExamplesBaseURL = opts.ForName[Toolkit, string]("examplesBaseURL")
	// WithLogger sets the logger. Defaults to slog.Default().
	WithLogger = opts.ForName[Toolkit, *slog.Logger]("logger")
	// WithCallObserver registers a function that sees every completed tool call.
	WithCallObserver = opts.ForName[Toolkit, CallObserver]("observer")
)
