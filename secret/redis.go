package secret

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

// Redis reads secrets stored as plain string keys, optionally under a prefix.
type Redis struct {
	client rueidis.Client
	prefix string
}

// NewRedis returns a Redis source. The client is owned by the caller.
func NewRedis(client rueidis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Fetch(ctx context.Context, name string) (string, error) {
	key := r.prefix + name
	v, err := r.client.Do(ctx, r.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", fmt.Errorf("%w: redis key %s", ErrNotFound, key)
		}
		return "", err
	}
	return v, nil
}
