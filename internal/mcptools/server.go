package mcptools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewEmbedMCPServer creates an MCP server with the generate_embed and
// derive_names tools registered.
func NewEmbedMCPServer(svc *EmbedService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "embedgen",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_embed",
		Description: "Generate a C++ source file embedding the given files as byte arrays with accessor functions. Writes <output>.cpp and returns the accessors it defines.",
	}, svc.GenerateEmbed)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "derive_names",
		Description: "Return the identifier, array symbol, and accessor name that would be generated for each file path.",
	}, svc.DeriveNames)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
