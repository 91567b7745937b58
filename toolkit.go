package docbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/casualjim/docbot/classify"
	"github.com/casualjim/docbot/codeexample"
	"github.com/casualjim/docbot/docsearch"
	"github.com/casualjim/docbot/future"
	"github.com/casualjim/docbot/internal/httpx"
	"github.com/casualjim/docbot/pkg/slogx"
	"github.com/casualjim/docbot/pkg/uuidx"
	"github.com/casualjim/docbot/releasenotes"
	"github.com/casualjim/docbot/secret"
	"github.com/casualjim/docbot/topic"
	"github.com/casualjim/docbot/vectorstore"
	"github.com/fogfish/opts"
	"github.com/google/uuid"
)

// Call describes one completed tool invocation.
type Call struct {
	ID      uuid.UUID
	Tool    string
	Elapsed time.Duration
	Err     error
}

// CallObserver is notified after every tool call.
type CallObserver func(ctx context.Context, call Call)

// Toolkit holds the documentation tools and the state they share.
// It is safe for concurrent use.
type Toolkit struct {
	backend         vectorstore.Backend
	secretSource    secret.Source
	secretName      string
	credential      *secret.Lazy
	httpClient      httpx.Client
	classifier      classify.Classifier
	releaseNotesURL string
	examplesBaseURL string
	logger          *slog.Logger
	observer        CallObserver

	search2x   func(context.Context, []string) (string, error)
	search3x   func(context.Context, []string) (string, error)
	releases   *releasenotes.Fetcher
	dispatcher *topic.Dispatcher
	retriever  *codeexample.Retriever
}

// New wires a Toolkit. WithBackend is required. The credential defaults to
// the environment, the classifier to classify.Keyword.
func New(options ...Option) (*Toolkit, error) {
	t := &Toolkit{}
	if err := opts.Apply(t, options); err != nil {
		return nil, err
	}
	if t.backend == nil {
		return nil, ErrNoBackend
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	if t.secretSource == nil {
		t.secretSource = secret.Env{}
	}
	if t.secretName == "" {
		t.secretName = docsearch.DefaultSecretName
	}
	if t.classifier == nil {
		t.classifier = classify.Keyword{}
	}

	if t.credential == nil {
		t.credential = secret.NewLazy(t.secretSource, t.secretName, t.logger)
	}

	searcher := docsearch.New(t.backend, t.credential)
	t.search2x = searcher.ForNamespace(docsearch.Prefect2)
	t.search3x = searcher.ForNamespace(docsearch.Prefect3)
	t.releases = releasenotes.New(t.httpClient, t.releaseNotesURL, t.logger)
	t.dispatcher = topic.New(
		topic.Register(topic.LatestPrefectVersion, func(ctx context.Context) future.Future[string] {
			return future.Go(ctx, t.releases.Latest)
		}),
	)
	t.retriever = codeexample.New(t.httpClient, t.examplesBaseURL, t.classifier, t.logger)
	t.logger = t.logger.With(slogx.LoggerName("docbot.toolkit"))
	return t, nil
}

// SearchPrefect2xDocs searches the Prefect 2.x documentation.
func (t *Toolkit) SearchPrefect2xDocs(ctx context.Context, queries []string) (string, error) {
	return t.observe(ctx, ToolSearchPrefect2xDocs, func(ctx context.Context) (string, error) {
		return t.search2x(ctx, queries)
	})
}

// SearchPrefect3xDocs searches the Prefect 3.x documentation.
func (t *Toolkit) SearchPrefect3xDocs(ctx context.Context, queries []string) (string, error) {
	return t.observe(ctx, ToolSearchPrefect3xDocs, func(ctx context.Context) (string, error) {
		return t.search3x(ctx, queries)
	})
}

// GetInfo returns information about a known topic.
func (t *Toolkit) GetInfo(ctx context.Context, tp topic.Topic) (string, error) {
	return t.observe(ctx, ToolGetInfo, func(ctx context.Context) (string, error) {
		return t.dispatcher.GetInfo(ctx, tp)
	})
}

// GetPrefectCodeExample returns the code example best matching relatedTo.
func (t *Toolkit) GetPrefectCodeExample(ctx context.Context, relatedTo string) (string, error) {
	return t.observe(ctx, ToolGetPrefectCodeExample, func(ctx context.Context) (string, error) {
		return t.retriever.Get(ctx, relatedTo)
	})
}

// Topics lists the topics GetInfo accepts.
func (t *Toolkit) Topics() []topic.Topic {
	return t.dispatcher.Topics()
}

func (t *Toolkit) observe(ctx context.Context, name string, fn func(context.Context) (string, error)) (string, error) {
	call := Call{ID: uuidx.New(), Tool: name}
	log := t.logger.With(slog.String("tool", name), slogx.Stringer("call_id", call.ID))

	start := time.Now()
	log.DebugContext(ctx, "tool call started")
	out, err := fn(ctx)
	call.Elapsed = time.Since(start)
	call.Err = err

	if err != nil {
		log.ErrorContext(ctx, "tool call failed", slogx.Elapsed(start), slogx.Error(err))
	} else {
		log.InfoContext(ctx, "tool call finished", slogx.Elapsed(start), slog.Int("result_bytes", len(out)))
	}
	if t.observer != nil {
		t.observer(ctx, call)
	}
	return out, err
}
