package mcptools

import "github.com/dusk-indust/embedgen/internal/export"

// --- MCP Tool Types for the server mode (--serve-mcp) ---

// GenerateEmbedInput is the input for the generate_embed MCP tool.
type GenerateEmbedInput struct {
	Output string   `json:"output" jsonschema:"output file stem; the generated file is <output>.cpp"`
	Inputs []string `json:"inputs" jsonschema:"input file paths in emission order"`
}

// GenerateEmbedOutput is the result of the generate_embed MCP tool.
type GenerateEmbedOutput struct {
	OutputPath string               `json:"outputPath"`
	Embeds     []export.EmbedReport `json:"embeds"`
}

// DeriveNamesInput is the input for the derive_names MCP tool.
type DeriveNamesInput struct {
	Paths []string `json:"paths" jsonschema:"file paths to derive generated names for"`
}

// DeriveNamesOutput is the result of the derive_names MCP tool.
type DeriveNamesOutput struct {
	Names []DerivedNames `json:"names"`
}

// DerivedNames lists the generated names for one path.
type DerivedNames struct {
	Path       string `json:"path"`
	Identifier string `json:"identifier"`
	Symbol     string `json:"symbol"`
	Accessor   string `json:"accessor"`
	Signature  string `json:"signature"`
}
