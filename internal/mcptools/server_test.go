package mcptools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/embedgen/internal/embed"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports and returns the connected client session.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	svc := NewEmbedService(embed.DefaultOptions(), nil)
	server := NewEmbedMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session
}

// decodeStructured round-trips structured tool output into out.
func decodeStructured(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	require.NotNil(t, result.StructuredContent)
	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	assert.Equal(t, []string{"derive_names", "generate_embed"}, names)
}

func TestMCPGenerateEmbed(t *testing.T) {
	session := setupServerClient(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "app-icon.png")
	require.NoError(t, os.WriteFile(in, []byte{1, 2, 3}, 0o644))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "generate_embed",
		Arguments: GenerateEmbedInput{
			Output: filepath.Join(dir, "icons"),
			Inputs: []string{in},
		},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out GenerateEmbedOutput
	decodeStructured(t, result, &out)

	assert.Equal(t, filepath.Join(dir, "icons.cpp"), out.OutputPath)
	require.Len(t, out.Embeds, 1)
	assert.Equal(t, "Getapp_icon", out.Embeds[0].Accessor)
	assert.EqualValues(t, 3, out.Embeds[0].Size)

	data, err := os.ReadFile(out.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "static const char sapp_iconData[] = {\n0x01,0x02,0x03,\n};\n")
}

func TestMCPGenerateEmbed_UnreadableInputIsToolError(t *testing.T) {
	session := setupServerClient(t)
	dir := t.TempDir()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "generate_embed",
		Arguments: GenerateEmbedInput{
			Output: filepath.Join(dir, "out"),
			Inputs: []string{filepath.Join(dir, "missing.bin")},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	_, statErr := os.Stat(filepath.Join(dir, "out.cpp"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMCPDeriveNames(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "derive_names",
		Arguments: DeriveNamesInput{Paths: []string{"ui/my-icon.png"}},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	var out DeriveNamesOutput
	decodeStructured(t, result, &out)

	require.Len(t, out.Names, 1)
	assert.Equal(t, DerivedNames{
		Path:       "ui/my-icon.png",
		Identifier: "my_icon",
		Symbol:     "smy_iconData",
		Accessor:   "Getmy_icon",
		Signature:  "void Getmy_icon(unsigned int* size, const char** data)",
	}, out.Names[0])
}
