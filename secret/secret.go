// Package secret resolves credentials by name and caches the first
// successful lookup for the life of the process.
package secret

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/casualjim/docbot/pkg/slogx"
)

// ErrNotFound is returned when a source has no value for the requested name.
var ErrNotFound = errors.New("secret not found")

// Source fetches a secret value by name.
type Source interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, name string) (string, error)

func (f SourceFunc) Fetch(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Env reads secrets from the process environment. The name is upper-cased,
// dashes become underscores, and Prefix is prepended: with Prefix "DOCBOT_"
// the secret "tpuf-api-key" is read from DOCBOT_TPUF_API_KEY.
type Env struct {
	Prefix string
}

func (e Env) Fetch(_ context.Context, name string) (string, error) {
	key := e.Key(name)
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: env %s", ErrNotFound, key)
	}
	return v, nil
}

// Key returns the environment variable consulted for name.
func (e Env) Key(name string) string {
	return e.Prefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Lazy holds one credential that is fetched on first use.
//
// Concurrent first callers are serialized, so the source is consulted once
// per successful fetch. A caller waiting behind a slow fetch gives up when
// its own context ends. A failed fetch is not remembered; the next Get tries
// again. There is no refresh.
type Lazy struct {
	source Source
	name   string
	log    *slog.Logger

	sem   chan struct{}
	value string
	ok    bool
}

// NewLazy returns a Lazy credential for name backed by source.
func NewLazy(source Source, name string, log *slog.Logger) *Lazy {
	if log == nil {
		log = slog.Default()
	}
	return &Lazy{
		source: source,
		name:   name,
		sem:    make(chan struct{}, 1),
		log:    log.With(slogx.LoggerName("docbot.secret"), slog.String("secret", name)),
	}
}

// Name returns the secret name.
func (l *Lazy) Name() string {
	return l.name
}

// Get returns the cached value, fetching it first if needed.
func (l *Lazy) Get(ctx context.Context) (string, error) {
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-l.sem }()

	if l.ok {
		return l.value, nil
	}

	v, err := l.source.Fetch(ctx, l.name)
	if err != nil {
		l.log.WarnContext(ctx, "fetching secret failed", slogx.Error(err))
		return "", fmt.Errorf("fetch secret %q: %w", l.name, err)
	}

	l.log.DebugContext(ctx, "secret loaded")
	l.value = v
	l.ok = true
	return v, nil
}

// Static returns a Lazy that is already resolved to value. It is meant for
// credentials injected through configuration at startup.
func Static(name, value string) *Lazy {
	l := NewLazy(SourceFunc(func(context.Context, string) (string, error) {
		return value, nil
	}), name, nil)
	l.value = value
	l.ok = true
	return l
}
