package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/rueidis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubEmbedder struct{ err error }

func (s stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{0.1, 0.2}
	}
	return out, nil
}

func TestStore_MultiQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "FT.SEARCH" && cmd[1] == "docs:prefect-2" && cmd[2] == "*=>[KNN 3 @vector $BLOB]"
			})).
			Return(mock.Result(mock.RedisArray(
				mock.RedisInt64(2),
				mock.RedisString("docs:prefect-2:1"),
				mock.RedisArray(mock.RedisString("text"), mock.RedisString("flows can retry")),
				mock.RedisString("docs:prefect-2:2"),
				mock.RedisArray(mock.RedisString("text"), mock.RedisString("tasks can retry")),
			))),
		c.EXPECT().
			Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "FT.SEARCH"
			})).
			Return(mock.Result(mock.RedisArray(
				mock.RedisInt64(1),
				mock.RedisString("docs:prefect-2:2"),
				mock.RedisArray(mock.RedisString("text"), mock.RedisString("tasks can retry")),
			))),
	)

	s, err := newStore(c, Config{Embedder: stubEmbedder{}})
	require.NoError(t, err)

	out, err := s.MultiQuery(context.Background(), []string{"retry flow", "retry task"}, "prefect-2", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "flows can retry\n\ntasks can retry", out)
}

func TestStore_MultiQueryLimitFollowsTopK(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			if cmd[0] != "FT.SEARCH" || cmd[2] != "*=>[KNN 25 @vector $BLOB]" {
				return false
			}
			for i := 0; i+2 < len(cmd); i++ {
				if cmd[i] == "LIMIT" {
					return cmd[i+1] == "0" && cmd[i+2] == "25"
				}
			}
			return false
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s, err := newStore(c, Config{Embedder: stubEmbedder{}, TopK: 25})
	require.NoError(t, err)

	_, err = s.MultiQuery(context.Background(), []string{"deployments"}, "prefect-3", "")
	require.NoError(t, err)
}

func TestStore_MultiQueryEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s, err := newStore(c, Config{Embedder: stubEmbedder{}, IndexPrefix: "idx:"})
	require.NoError(t, err)

	out, err := s.MultiQuery(context.Background(), []string{"anything"}, "prefect-3", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestStore_MultiQueryErrors(t *testing.T) {
	t.Run("search error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mock.NewClient(ctrl)
		c.EXPECT().
			Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
			Return(mock.ErrorResult(context.DeadlineExceeded))

		s, err := newStore(c, Config{Embedder: stubEmbedder{}})
		require.NoError(t, err)

		_, err = s.MultiQuery(context.Background(), []string{"q"}, "prefect-3", "")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("embedding error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := mock.NewClient(ctrl)
		boom := errors.New("no embeddings")

		s, err := newStore(c, Config{Embedder: stubEmbedder{err: boom}})
		require.NoError(t, err)

		_, err = s.MultiQuery(context.Background(), []string{"q"}, "prefect-3", "")
		require.ErrorIs(t, err, boom)
	})

	t.Run("config validation", func(t *testing.T) {
		_, err := NewStore(Config{})
		require.Error(t, err)

		ctrl := gomock.NewController(t)
		_, err = newStore(mock.NewClient(ctrl), Config{})
		require.Error(t, err)
	})
}

func TestVectorToBytes(t *testing.T) {
	b := vectorToBytes([]float32{1, 0})
	assert.Len(t, b, 8)
	assert.Equal(t, "\x00\x00\x80\x3f\x00\x00\x00\x00", b)
}
