package openai

import (
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var modelRegistry = haxmap.New[string, *Model]()

// GPT4oMini is the default classification model.
func GPT4oMini(opts ...option.RequestOption) *Model {
	return LookupModel(openai.ChatModelGPT4oMini, opts...)
}

// LookupModel returns the process-wide model for name, creating it on first
// use. Options only apply when the model is created.
func LookupModel(name string, opts ...option.RequestOption) *Model {
	m, _ := modelRegistry.GetOrCompute(name, func() *Model {
		return &Model{name: name, opts: opts}
	})
	return m
}

// Model is a chat model with a lazily constructed client.
type Model struct {
	name string
	opts []option.RequestOption

	client     *openai.Client
	clientOnce sync.Once
}

// Name returns the model name sent with each request.
func (m *Model) Name() string {
	return m.name
}

// Client returns the shared API client for the model.
func (m *Model) Client() *openai.Client {
	m.clientOnce.Do(func() {
		m.client = openai.NewClient(m.opts...)
	})
	return m.client
}
