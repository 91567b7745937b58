package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAI_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.Equal(t, []string{"retry a flow", "task run id"}, req.Input)

		w.Header().Set("Content-Type", "application/json")
		// answer out of order to check the index mapping
		_, _ = w.Write([]byte(`{
			"object": "list",
			"model": "text-embedding-3-small",
			"data": [
				{"object": "embedding", "index": 1, "embedding": [0.3, 0.4]},
				{"object": "embedding", "index": 0, "embedding": [0.1, 0.2]}
			],
			"usage": {"prompt_tokens": 6, "total_tokens": 6}
		}`))
	}))
	defer srv.Close()

	e := NewOpenAI(Config{APIKey: "sk-test", BaseURL: srv.URL})
	vecs, err := e.Embed(context.Background(), []string{"retry a flow", "task run id"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}}, vecs)
}

func TestOpenAI_EmbedErrors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		}))
		defer srv.Close()

		_, err := NewOpenAI(Config{APIKey: "sk-bad", BaseURL: srv.URL}).Embed(context.Background(), []string{"q"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("missing vectors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"list","data":[],"usage":{}}`))
		}))
		defer srv.Close()

		_, err := NewOpenAI(Config{APIKey: "sk-test", BaseURL: srv.URL}).Embed(context.Background(), []string{"q"})
		require.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("duplicate index", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"object":"list","data":[
				{"object":"embedding","index":0,"embedding":[0.1]},
				{"object":"embedding","index":0,"embedding":[0.2]}
			],"usage":{}}`))
		}))
		defer srv.Close()

		_, err := NewOpenAI(Config{APIKey: "sk-test", BaseURL: srv.URL}).Embed(context.Background(), []string{"a", "b"})
		require.ErrorIs(t, err, ErrEmptyResponse)
		assert.Contains(t, err.Error(), "duplicate vector for input 0")
	})
}
