// Package topic dispatches informational lookups by topic name.
package topic

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/casualjim/docbot/future"
	"github.com/invopop/jsonschema"
)

// Topic identifies one kind of informational lookup.
type Topic string

// LatestPrefectVersion returns the newest section of the Prefect release notes.
const LatestPrefectVersion Topic = "latest_prefect_version"

// ErrInvalidTopic is returned for topics with no registered handler.
var ErrInvalidTopic = errors.New("invalid topic")

func (t Topic) String() string {
	return string(t)
}

// Handler produces the text for one topic. Synchronous handlers return
// future.Resolved; handlers doing I/O return future.Go.
type Handler func(ctx context.Context) future.Future[string]

// Registration binds a topic to its handler.
type Registration struct {
	topic   Topic
	handler Handler
}

// Register binds handler to t.
func Register(t Topic, handler Handler) Registration {
	return Registration{topic: t, handler: handler}
}

// Dispatcher routes topics to handlers. The table is fixed at construction.
type Dispatcher struct {
	handlers map[Topic]Handler
	topics   []Topic
}

// New builds a Dispatcher. A topic registered twice keeps the last handler.
func New(regs ...Registration) *Dispatcher {
	d := &Dispatcher{handlers: make(map[Topic]Handler, len(regs))}
	for _, r := range regs {
		if r.handler == nil {
			continue
		}
		if _, seen := d.handlers[r.topic]; !seen {
			d.topics = append(d.topics, r.topic)
		}
		d.handlers[r.topic] = r.handler
	}
	slices.Sort(d.topics)
	return d
}

// GetInfo invokes the handler for t and waits for its result.
func (d *Dispatcher) GetInfo(ctx context.Context, t Topic) (string, error) {
	h, ok := d.handlers[t]
	if !ok {
		return "", fmt.Errorf("%w: %q (valid topics: %s)", ErrInvalidTopic, string(t), d.validList())
	}
	return h(ctx).Get(ctx)
}

// Topics lists the registered topics in sorted order.
func (d *Dispatcher) Topics() []Topic {
	return slices.Clone(d.topics)
}

func (d *Dispatcher) validList() string {
	names := make([]string, len(d.topics))
	for i, t := range d.topics {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// Known lists every topic the assistant can ask about.
var Known = []Topic{LatestPrefectVersion}

// JSONSchema restricts the topic to the known values in tool schemas.
func (Topic) JSONSchema() *jsonschema.Schema {
	enum := make([]any, len(Known))
	for i, t := range Known {
		enum[i] = string(t)
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}
