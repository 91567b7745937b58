package mcpserver

import (
	"context"
	"errors"
	"testing"

	"github.com/casualjim/docbot/tool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInvalidTopic = errors.New("invalid topic")

func testTools() []tool.Definition {
	return []tool.Definition{
		tool.Must(func(_ context.Context, queries []string) (string, error) {
			return "found: " + queries[0], nil
		}, tool.Name("search_prefect_3x_docs"), tool.Description("Searches the docs."), tool.Parameters("queries")),
		tool.Must(func(_ context.Context, topic string) (string, error) {
			if topic != "latest_prefect_version" {
				return "", errInvalidTopic
			}
			return "3.1.0", nil
		}, tool.Name("get_info"), tool.Description("Gets info."), tool.Parameters("topic")),
	}
}

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()
	s, err := New("docbot-test", "0.0.1", testTools()...)
	require.NoError(t, err)

	ctx := context.Background()
	st, ct := mcp.NewInMemoryTransports()
	ss, err := s.MCP().Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func TestListTools(t *testing.T) {
	cs := connect(t)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 2)

	byName := map[string]*mcp.Tool{}
	for _, tl := range res.Tools {
		byName[tl.Name] = tl
	}
	search := byName["search_prefect_3x_docs"]
	require.NotNil(t, search)
	assert.Equal(t, "Searches the docs.", search.Description)

	schema, ok := search.InputSchema.(map[string]any)
	require.True(t, ok, "input schema is %T", search.InputSchema)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"queries"}, schema["required"])
	props := schema["properties"].(map[string]any)
	queries := props["queries"].(map[string]any)
	assert.Equal(t, "array", queries["type"])
	assert.Equal(t, map[string]any{"type": "string"}, queries["items"])
}

func TestCallTool(t *testing.T) {
	cs := connect(t)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_prefect_3x_docs",
		Arguments: map[string]any{"queries": []string{"work pools"}},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "found: work pools", text.Text)
}

func TestCallTool_ErrorResult(t *testing.T) {
	cs := connect(t)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_info",
		Arguments: map[string]any{"topic": "bogus"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "invalid topic")
}

func TestCallTool_MissingArgument(t *testing.T) {
	cs := connect(t)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_info",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandler(t *testing.T) {
	s, err := New("docbot-test", "0.0.1", testTools()...)
	require.NoError(t, err)
	assert.NotNil(t, s.Handler())
}
