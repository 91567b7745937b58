package tool

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func TestMust(t *testing.T) {
	testFunc := func() {}

	t.Run("valid function", func(t *testing.T) {
		assert.NotPanics(t, func() {
			def := Must(testFunc)
			assert.Equal(t, reflect.ValueOf(testFunc).Pointer(), reflect.ValueOf(def.Function).Pointer())
		})
	})

	t.Run("invalid function", func(t *testing.T) {
		assert.Panics(t, func() {
			Must("not a function")
		})
	})
}

func getInfo(context.Context, string) (string, error) { return "", nil }

func TestNew_Options(t *testing.T) {
	def, err := New(getInfo,
		Name("get_info"),
		Description("Looks up information"),
		Parameters("topic"),
	)
	require.NoError(t, err)
	assert.Equal(t, "get_info", def.Name)
	assert.Equal(t, "Looks up information", def.Description)
	assert.Equal(t, map[string]string{"param0": "topic"}, def.Parameters)

	def, err = New(getInfo)
	require.NoError(t, err)
	assert.Equal(t, "getInfo", def.Name)
}

func TestToNameAndSchema(t *testing.T) {
	def := Must(func(context.Context, []string) (string, error) { return "", nil },
		Name("search_prefect_3x_docs"),
		Parameters("queries"),
	)

	gotName, gotSchema := def.ToNameAndSchema()
	assert.Equal(t, "search_prefect_3x_docs", gotName)
	assert.Equal(t, "object", gotSchema.Type)
	assert.Equal(t, []string{"queries"}, gotSchema.Required)

	queries, ok := gotSchema.Properties.Get("queries")
	require.True(t, ok)
	assert.Equal(t, "array", queries.Type)
	require.NotNil(t, queries.Items)
	assert.Equal(t, "string", queries.Items.Type)
	assert.Empty(t, queries.Version)
}

func TestToNameAndSchema_String(t *testing.T) {
	om := orderedmap.New[string, *jsonschema.Schema]()
	om.Set("topic", &jsonschema.Schema{Type: "string"})

	_, schema := Must(getInfo, Parameters("topic")).ToNameAndSchema()
	assert.Equal(t, &jsonschema.Schema{
		Type:       "object",
		Properties: om,
		Required:   []string{"topic"},
	}, schema)
}

func TestToNameAndSchema_NoArguments(t *testing.T) {
	def := Must(func(context.Context) string { return "" }, Name("ping"))
	_, schema := def.ToNameAndSchema()
	assert.Equal(t, "object", schema.Type)
	assert.Zero(t, schema.Properties.Len())
	assert.Empty(t, schema.Required)
}

func TestToNameAndSchema_UnnamedParameters(t *testing.T) {
	def := Must(func(context.Context, string, int) string { return "" }, Name("f"))
	_, schema := def.ToNameAndSchema()
	assert.Equal(t, []string{"param0", "param1"}, schema.Required)
}

type mood string

type ctxKey struct{}

func TestCall(t *testing.T) {
	tests := []struct {
		name    string
		fn      any
		params  []string
		args    string
		want    string
		wantErr error
	}{
		{
			name:   "string result verbatim",
			fn:     func(_ context.Context, queries []string) (string, error) { return queries[0] + "|" + queries[1], nil },
			params: []string{"queries"},
			args:   `{"queries":["a","b"]}`,
			want:   "a|b",
		},
		{
			name: "context injected",
			fn:   func(ctx context.Context) string { return ctx.Value(ctxKey{}).(string) },
			args: `{}`,
			want: "from-ctx",
		},
		{
			name:   "non string result as json",
			fn:     func(n int) map[string]int { return map[string]int{"n": n} },
			params: []string{"n"},
			args:   `{"n":3}`,
			want:   `{"n":3}`,
		},
		{
			name: "named string type",
			fn:   func() mood { return "happy" },
			args: ``,
			want: "happy",
		},
		{
			name:    "missing argument",
			fn:      func(_ context.Context, topic string) string { return topic },
			params:  []string{"topic"},
			args:    `{}`,
			wantErr: ErrMissingArgument,
		},
		{
			name:    "wrong argument type",
			fn:      func(_ context.Context, queries []string) string { return "" },
			params:  []string{"queries"},
			args:    `{"queries":"not a list"}`,
			wantErr: ErrInvalidArguments,
		},
		{
			name:    "arguments not an object",
			fn:      func() string { return "" },
			args:    `[1,2]`,
			wantErr: ErrInvalidArguments,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := Must(tt.fn, Name("t"), Parameters(tt.params...))
			ctx := context.WithValue(context.Background(), ctxKey{}, "from-ctx")

			got, err := def.Call(ctx, []byte(tt.args))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCall_FunctionError(t *testing.T) {
	boom := errors.New("invalid topic")
	def := Must(func(context.Context, string) (string, error) { return "", boom }, Parameters("topic"))

	_, err := def.Call(context.Background(), []byte(`{"topic":"x"}`))
	require.ErrorIs(t, err, boom)
}
