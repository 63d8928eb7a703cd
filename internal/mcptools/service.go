package mcptools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/dusk-indust/embedgen/internal/embed"
	"github.com/dusk-indust/embedgen/internal/export"
)

// EmbedService handles MCP tool calls for the server mode.
type EmbedService struct {
	opts   embed.Options
	logger *zap.Logger
	now    func() time.Time
}

// NewEmbedService creates an EmbedService that generates with opts. logger
// may be nil.
func NewEmbedService(opts embed.Options, logger *zap.Logger) *EmbedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmbedService{
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateEmbed writes <output>.cpp from the given inputs. Malformed input and
// I/O failures are both returned as tool errors; nothing is written unless
// every input was read.
func (s *EmbedService) GenerateEmbed(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GenerateEmbedInput,
) (*mcp.CallToolResult, GenerateEmbedOutput, error) {
	if input.Output == "" {
		return nil, GenerateEmbedOutput{}, errors.New("output is required")
	}
	if len(input.Inputs) == 0 {
		return nil, GenerateEmbedOutput{}, errors.New("at least one input is required")
	}

	job := embed.NewJob(input.Output, input.Inputs)
	now := s.now()

	if err := embed.Run(job, s.opts, now); err != nil {
		s.logger.Warn("generate_embed failed", zap.String("output", job.OutputPath()), zap.Error(err))
		return nil, GenerateEmbedOutput{}, err
	}

	report, err := export.BuildReport(job, now)
	if err != nil {
		return nil, GenerateEmbedOutput{}, fmt.Errorf("describe %s: %w", job.OutputPath(), err)
	}

	s.logger.Info("generate_embed", zap.String("output", job.OutputPath()), zap.Int("inputs", len(job.Requests)))
	return nil, GenerateEmbedOutput{
		OutputPath: job.OutputPath(),
		Embeds:     report.Embeds,
	}, nil
}

// DeriveNames returns the identifiers a generated file would use for each
// path, without touching the filesystem.
func (s *EmbedService) DeriveNames(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DeriveNamesInput,
) (*mcp.CallToolResult, DeriveNamesOutput, error) {
	names := make([]DerivedNames, len(input.Paths))
	for i, p := range input.Paths {
		r := embed.NewRequest(p)
		names[i] = DerivedNames{
			Path:       r.SourcePath,
			Identifier: r.Identifier,
			Symbol:     r.Symbol,
			Accessor:   r.Accessor(),
			Signature:  r.Signature,
		}
	}
	return nil, DeriveNamesOutput{Names: names}, nil
}
