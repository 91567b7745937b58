package secret

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

type keyValue interface {
	Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error)
}

// NATSKeyValue reads secrets from a JetStream key-value bucket. Secret names
// are used as keys as-is.
type NATSKeyValue struct {
	kv keyValue
}

// NewNATSKeyValue binds to an existing bucket on nc.
func NewNATSKeyValue(ctx context.Context, nc *nats.Conn, bucket string) (*NATSKeyValue, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	kv, err := js.KeyValue(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("bind key-value bucket %q: %w", bucket, err)
	}
	return &NATSKeyValue{kv: kv}, nil
}

func (n *NATSKeyValue) Fetch(ctx context.Context, name string) (string, error) {
	entry, err := n.kv.Get(ctx, name)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return "", fmt.Errorf("%w: nats key %s", ErrNotFound, name)
		}
		return "", err
	}
	return string(entry.Value()), nil
}
