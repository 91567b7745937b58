// Package mcpserver serves tool definitions over the Model Context Protocol.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/casualjim/docbot/pkg/jsonx"
	"github.com/casualjim/docbot/pkg/slogx"
	"github.com/casualjim/docbot/tool"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes a fixed set of tools.
type Server struct {
	server *mcp.Server
	log    *slog.Logger
}

// New registers defs on a new MCP server. Tool errors are reported to the
// client as error results rather than protocol failures.
func New(name, version string, defs ...tool.Definition) (*Server, error) {
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
		log:    slog.Default().With(slogx.LoggerName("docbot.mcpserver")),
	}

	for _, def := range defs {
		if err := s.add(def); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Server) add(def tool.Definition) error {
	name, schema := def.ToNameAndSchema()
	inputSchema, err := jsonx.ToDynamicJSON(schema)
	if err != nil {
		return fmt.Errorf("schema for tool %s: %w", name, err)
	}

	s.server.AddTool(&mcp.Tool{
		Name:        name,
		Description: def.Description,
		InputSchema: inputSchema,
	}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := def.Call(ctx, req.Params.Arguments)
		if err != nil {
			s.log.WarnContext(ctx, "tool returned an error", slog.String("tool", name), slogx.Error(err))
			return errorResult(err), nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: out}},
		}, nil
	})
	return nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

// MCP returns the underlying server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// ServeStdio serves a single session over stdin and stdout until ctx is
// done or the client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves the streamable HTTP transport.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}
