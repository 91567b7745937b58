// Package turbopuffer queries documentation namespaces stored in turbopuffer.
package turbopuffer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/casualjim/docbot/embedding"
	"github.com/casualjim/docbot/internal/httpx"
	"github.com/casualjim/docbot/pkg/slogx"
	"github.com/casualjim/docbot/vectorstore"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultBaseURL is the turbopuffer API root.
const DefaultBaseURL = "https://api.turbopuffer.com"

// TextAttribute is the attribute holding the indexed chunk text.
const TextAttribute = "text"

var _ vectorstore.Backend = (*Client)(nil)

// Config configures a Client.
type Config struct {
	BaseURL    string
	TopK       int
	Embedder   embedding.Embedder
	HTTPClient httpx.Client
	Logger     *slog.Logger
}

// Client is a vectorstore.Backend over the turbopuffer query API.
type Client struct {
	baseURL  string
	topK     int
	embedder embedding.Embedder
	http     httpx.Client
	log      *slog.Logger
}

// New creates a Client. An embedder is required.
func New(cfg Config) (*Client, error) {
	if cfg.Embedder == nil {
		return nil, errors.New("turbopuffer: embedder is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TopK <= 0 {
		cfg.TopK = vectorstore.DefaultTopK
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		topK:     cfg.TopK,
		embedder: cfg.Embedder,
		http:     cfg.HTTPClient,
		log:      cfg.Logger.With(slogx.LoggerName("docbot.turbopuffer")),
	}, nil
}

// MultiQuery embeds all queries in one call, then runs one nearest-neighbour
// query per vector, in order, and aggregates the hits.
func (c *Client) MultiQuery(ctx context.Context, queries []string, namespace, apiKey string) (string, error) {
	vectors, err := c.embedder.Embed(ctx, queries)
	if err != nil {
		return "", err
	}

	perQuery := make([][]vectorstore.Hit, 0, len(vectors))
	for i, vec := range vectors {
		hits, err := c.query(ctx, namespace, apiKey, vec)
		if err != nil {
			return "", fmt.Errorf("query %q in %s: %w", queries[i], namespace, err)
		}
		c.log.DebugContext(ctx, "namespace queried",
			slog.String("namespace", namespace),
			slog.String("query", queries[i]),
			slog.Int("hits", len(hits)),
		)
		perQuery = append(perQuery, hits)
	}
	return vectorstore.Aggregate(perQuery...), nil
}

func (c *Client) query(ctx context.Context, namespace, apiKey string, vector []float32) ([]vectorstore.Hit, error) {
	body, err := queryBody(vector, c.topK)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v1/namespaces/%s/query", c.baseURL, url.PathEscape(namespace))
	header := http.Header{
		"Content-Type":  []string{"application/json"},
		"Authorization": []string{"Bearer " + apiKey},
	}
	resp, err := httpx.Send(ctx, c.http, http.MethodPost, u, header, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return parseHits(resp)
}

func queryBody(vector []float32, topK int) ([]byte, error) {
	body := []byte(`{}`)
	var err error
	for _, kv := range []struct {
		path  string
		value any
	}{
		{"vector", vector},
		{"top_k", topK},
		{"distance_metric", "cosine_distance"},
		{"include_attributes", []string{TextAttribute}},
	} {
		if body, err = sjson.SetBytes(body, kv.path, kv.value); err != nil {
			return nil, fmt.Errorf("build query body: %w", err)
		}
	}
	return body, nil
}

// parseHits accepts both the bare array response and the {"rows": [...]} form.
func parseHits(resp []byte) ([]vectorstore.Hit, error) {
	if !gjson.ValidBytes(resp) {
		return nil, errors.New("turbopuffer: invalid JSON response")
	}
	rows := gjson.ParseBytes(resp)
	if !rows.IsArray() {
		rows = rows.Get("rows")
	}

	var hits []vectorstore.Hit
	rows.ForEach(func(_, row gjson.Result) bool {
		hits = append(hits, vectorstore.Hit{
			ID:   row.Get("id").String(),
			Text: row.Get("attributes." + TextAttribute).String(),
		})
		return true
	})
	return hits, nil
}
