// Package redis queries documentation namespaces indexed in Redis or Valkey
// with the search module (FT.SEARCH over an HNSW vector field).
package redis

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/casualjim/docbot/embedding"
	"github.com/casualjim/docbot/pkg/slogx"
	"github.com/casualjim/docbot/vectorstore"
	"github.com/redis/rueidis"
)

const (
	// DefaultIndexPrefix is prepended to the namespace to form the index name.
	DefaultIndexPrefix = "docs:"
	// VectorField is the indexed embedding field.
	VectorField = "vector"
	// TextField is the field holding the chunk text.
	TextField = "text"
)

var _ vectorstore.Backend = (*Store)(nil)

// Config holds connection parameters.
type Config struct {
	Addrs       []string
	Username    string
	Password    string
	DB          int
	IndexPrefix string
	TopK        int
	Embedder    embedding.Embedder
	Logger      *slog.Logger
}

// Store is a vectorstore.Backend over rueidis.
type Store struct {
	client      rueidis.Client
	indexPrefix string
	topK        int
	embedder    embedding.Embedder
	log         *slog.Logger
}

// NewStore connects to Redis.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		AlwaysRESP2:  true, // FT.SEARCH replies are parsed as RESP2 arrays
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return newStore(client, cfg)
}

func newStore(client rueidis.Client, cfg Config) (*Store, error) {
	if cfg.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if cfg.IndexPrefix == "" {
		cfg.IndexPrefix = DefaultIndexPrefix
	}
	if cfg.TopK <= 0 {
		cfg.TopK = vectorstore.DefaultTopK
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		client:      client,
		indexPrefix: cfg.IndexPrefix,
		topK:        cfg.TopK,
		embedder:    cfg.Embedder,
		log:         cfg.Logger.With(slogx.LoggerName("docbot.redis")),
	}, nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// MultiQuery runs one KNN search per query against the namespace index.
// The credential is unused; access is controlled by the connection settings.
func (s *Store) MultiQuery(ctx context.Context, queries []string, namespace, _ string) (string, error) {
	vectors, err := s.embedder.Embed(ctx, queries)
	if err != nil {
		return "", err
	}

	index := s.indexPrefix + namespace
	perQuery := make([][]vectorstore.Hit, 0, len(vectors))
	for i, vec := range vectors {
		hits, err := s.searchKNN(ctx, index, vec)
		if err != nil {
			return "", fmt.Errorf("query %q in %s: %w", queries[i], index, err)
		}
		s.log.DebugContext(ctx, "index searched",
			slog.String("index", index),
			slog.String("query", queries[i]),
			slog.Int("hits", len(hits)),
		)
		perQuery = append(perQuery, hits)
	}
	return vectorstore.Aggregate(perQuery...), nil
}

func (s *Store) searchKNN(ctx context.Context, index string, vector []float32) ([]vectorstore.Hit, error) {
	query := fmt.Sprintf("*=>[KNN %d @%s $BLOB]", s.topK, VectorField)
	cmd := s.client.B().Arbitrary("FT.SEARCH").Args(
		index, query,
		"RETURN", "1", TextField,
		"PARAMS", "2", "BLOB", vectorToBytes(vector),
		"LIMIT", "0", strconv.Itoa(s.topK),
		"DIALECT", "2",
	).Build()

	raw, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		return nil, err
	}
	return parseKNNResult(raw)
}

// parseKNNResult reads [total, key1, [field, value, ...], key2, ...].
func parseKNNResult(raw []rueidis.RedisMessage) ([]vectorstore.Hit, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	hits := make([]vectorstore.Hit, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}
		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}
		hits = append(hits, vectorstore.Hit{ID: key, Text: fieldValue(fields, TextField)})
	}
	return hits, nil
}

func fieldValue(fields []rueidis.RedisMessage, name string) string {
	for j := 0; j+1 < len(fields); j += 2 {
		k, err := fields[j].ToString()
		if err != nil || k != name {
			continue
		}
		v, _ := fields[j+1].ToString()
		return v
	}
	return ""
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
