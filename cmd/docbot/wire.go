package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/casualjim/docbot"
	"github.com/casualjim/docbot/classify"
	classifyopenai "github.com/casualjim/docbot/classify/openai"
	"github.com/casualjim/docbot/embedding"
	"github.com/casualjim/docbot/internal/config"
	"github.com/casualjim/docbot/internal/metrics"
	"github.com/casualjim/docbot/pkg/natsx"
	"github.com/casualjim/docbot/secret"
	"github.com/casualjim/docbot/vectorstore"
	vsredis "github.com/casualjim/docbot/vectorstore/redis"
	"github.com/casualjim/docbot/vectorstore/turbopuffer"
	"github.com/openai/openai-go/option"
	"github.com/redis/rueidis"
)

// closers releases connections opened while wiring, in reverse order.
type closers []func()

func (c closers) Close() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func buildToolkit(ctx context.Context, cfg config.Config) (*docbot.Toolkit, closers, error) {
	var cleanup closers

	backend, err := buildBackend(cfg, &cleanup)
	if err != nil {
		cleanup.Close()
		return nil, nil, err
	}
	credential, err := buildCredential(ctx, cfg, &cleanup)
	if err != nil {
		cleanup.Close()
		return nil, nil, err
	}

	kit, err := docbot.New(
		docbot.WithBackend(backend),
		credential,
		docbot.WithSecretName(cfg.Secret.Name),
		docbot.WithClassifier(buildClassifier(cfg)),
		docbot.WithReleaseNotesURL(cfg.Sources.ReleaseNotesURL),
		docbot.WithExamplesBaseURL(cfg.Sources.ExamplesBaseURL),
		docbot.WithLogger(slog.Default()),
		docbot.WithCallObserver(metrics.ObserveCall),
	)
	if err != nil {
		cleanup.Close()
		return nil, nil, err
	}
	return kit, cleanup, nil
}

func buildBackend(cfg config.Config, cleanup *closers) (vectorstore.Backend, error) {
	embedder := embedding.NewOpenAI(embedding.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})

	switch cfg.VectorStore.Driver {
	case "redis":
		rc := cfg.VectorStore.Redis
		store, err := vsredis.NewStore(vsredis.Config{
			Addrs:       rc.Addrs,
			Username:    rc.Username,
			Password:    rc.Password,
			DB:          rc.DB,
			IndexPrefix: rc.IndexPrefix,
			TopK:        rc.TopK,
			Embedder:    embedder,
		})
		if err != nil {
			return nil, fmt.Errorf("redis vector store: %w", err)
		}
		*cleanup = append(*cleanup, store.Close)
		return store, nil
	default:
		client, err := turbopuffer.New(turbopuffer.Config{
			BaseURL:  cfg.VectorStore.Turbopuffer.BaseURL,
			TopK:     cfg.VectorStore.Turbopuffer.TopK,
			Embedder: embedder,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// buildCredential resolves a configured value directly and defers every
// other source until the first search.
func buildCredential(ctx context.Context, cfg config.Config, cleanup *closers) (docbot.Option, error) {
	if cfg.Secret.Source == "static" {
		return docbot.WithCredential(secret.Static(cfg.Secret.Name, cfg.Secret.Value)), nil
	}
	source, err := buildSecretSource(ctx, cfg, cleanup)
	if err != nil {
		return nil, err
	}
	return docbot.WithSecretSource(source), nil
}

func buildSecretSource(ctx context.Context, cfg config.Config, cleanup *closers) (secret.Source, error) {
	sc := cfg.Secret
	switch sc.Source {
	case "prefect":
		return secret.PrefectBlock{APIURL: sc.Prefect.APIURL, APIKey: sc.Prefect.APIKey}, nil
	case "nats":
		nc, err := natsx.NewClient(sc.NATS.URL)
		if err != nil {
			return nil, fmt.Errorf("connect to nats: %w", err)
		}
		*cleanup = append(*cleanup, nc.Close)
		kv, err := secret.NewNATSKeyValue(ctx, nc, sc.NATS.Bucket)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case "redis":
		client, err := rueidis.NewClient(rueidis.ClientOption{
			InitAddress:  sc.Redis.Addrs,
			Username:     sc.Redis.Username,
			Password:     sc.Redis.Password,
			SelectDB:     sc.Redis.DB,
			DisableCache: true,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		*cleanup = append(*cleanup, client.Close)
		return secret.NewRedis(client, sc.Redis.KeyPrefix), nil
	default:
		return secret.Env{Prefix: sc.EnvPrefix}, nil
	}
}

func buildClassifier(cfg config.Config) classify.Classifier {
	if cfg.Classifier.Kind != "openai" {
		return classify.Keyword{}
	}

	var opts []option.RequestOption
	if cfg.Classifier.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.Classifier.APIKey))
	}
	if cfg.Classifier.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.Classifier.BaseURL))
	}
	if cfg.Classifier.Model == "" {
		return classifyopenai.New(classifyopenai.GPT4oMini(opts...))
	}
	return classifyopenai.New(classifyopenai.LookupModel(cfg.Classifier.Model, opts...))
}
