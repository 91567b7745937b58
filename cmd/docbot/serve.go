package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/casualjim/docbot/internal/metrics"
	"github.com/casualjim/docbot/mcpserver"
	"github.com/casualjim/docbot/pkg/slogx"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func serveMain(ctx context.Context, root rootArgs, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var addr string
	fs.StringVar(&addr, "http", "", "Serve streamable HTTP on this address instead of stdio (overrides server.http_addr)")
	if err := fs.Parse(args); err != nil {
		return parseError(err)
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.HTTPAddr
	}

	kit, cleanup, err := buildToolkit(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup.Close()

	srv, err := mcpserver.New(cfg.Server.Name, version, kit.Tools()...)
	if err != nil {
		return err
	}

	if addr == "" {
		slog.Info("serving MCP over stdio", slog.String("version", version))
		if err := srv.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio server: %w", err)
		}
		return nil
	}

	hs := &http.Server{
		Addr:              addr,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownSec)*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown failed", slogx.Error(err))
		}
	}()

	slog.Info("serving MCP over HTTP", slog.String("addr", addr), slog.String("version", version))
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func newRouter(srv *mcpserver.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Handle("/mcp", srv.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	return r
}
