package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dusk-indust/embedgen/internal/batch"
	"github.com/dusk-indust/embedgen/internal/config"
	"github.com/dusk-indust/embedgen/internal/embed"
	"github.com/dusk-indust/embedgen/internal/export"
	"github.com/dusk-indust/embedgen/internal/mcptools"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ConfigPath string
	Manifest   bool
	Report     bool
	Verbose    bool
	ServeMCP   bool
	Version    bool
}

// version is set by goreleaser at build time.
var version = "dev"

const usageLine = "usage: embedgen [flags] <output_stem> <input_path>..."

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var flags cliFlags

	fs := flag.NewFlagSet("embedgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&flags.ConfigPath, "config", "", "path to an embedgen.yml manifest (default: ./embedgen.yml, then XDG config)")
	fs.BoolVar(&flags.Manifest, "manifest", false, "generate every job listed in the manifest")
	fs.BoolVar(&flags.Report, "report", false, "print a JSON report of the generated embeds")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server on stdio")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stdout, usageLine)
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		fs.SetOutput(stderr)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if flags.Version {
		fmt.Fprintln(stdout, version)
		return nil
	}

	batchMode := flags.ServeMCP || flags.Manifest
	if !batchMode && fs.NArg() < 2 {
		fs.Usage()
		return nil
	}

	logger := newLogger(stderr, flags.Verbose)
	defer logger.Sync()

	manifest, err := loadManifest(flags.ConfigPath, batchMode)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", manifest.Path, err)
	}
	if manifest.Path != "" {
		logger.Debug("loaded manifest", zap.String("path", manifest.Path), zap.Int("jobs", len(manifest.Jobs)))
	}
	opts := manifest.Options()

	switch {
	case flags.ServeMCP:
		return serveMCP(opts, logger)
	case flags.Manifest:
		return runManifest(manifest, opts, logger, stdout)
	}

	job := embed.NewJob(fs.Arg(0), fs.Args()[1:])
	now := time.Now()
	logger.Debug("generating", zap.String("output", job.OutputPath()), zap.Int("inputs", len(job.Requests)))

	if err := embed.Run(job, opts, now); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "embedgen: generated %s\n", job.OutputPath())

	if flags.Report {
		return writeReport(stdout, job, now)
	}
	return nil
}

// loadManifest reads the manifest named by -config, else the project file in
// the working directory. The user-level XDG manifest is only consulted for
// batch and server runs so that positional runs keep the default layout.
func loadManifest(path string, userFallback bool) (*config.Manifest, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if userFallback {
		return config.LoadWithUserFallback(".")
	}
	return config.Load(".")
}

func runManifest(manifest *config.Manifest, opts embed.Options, logger *zap.Logger, stdout io.Writer) error {
	if len(manifest.Jobs) == 0 {
		return errors.New("no jobs defined; add a jobs list to embedgen.yml or pass -config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := batch.NewRunner(opts, logger).Run(ctx, manifest.BuildJobs())
	for _, res := range results {
		if res.Err == nil && !res.Skipped {
			fmt.Fprintf(stdout, "embedgen: generated %s\n", res.Job.OutputPath())
		}
	}
	return err
}

func writeReport(w io.Writer, job embed.Job, now time.Time) error {
	report, err := export.BuildReport(job, now)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	return report.WriteJSON(w)
}

func serveMCP(opts embed.Options, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("serving MCP on stdio", zap.String("version", version))
	server := mcptools.NewEmbedMCPServer(mcptools.NewEmbedService(opts, logger))
	return mcptools.RunStdio(ctx, server)
}
