package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"retailprep/internal/config"
	"retailprep/internal/errs"
	"retailprep/internal/pipeline"
)

// errInvalidConfig is returned after the issues have already been printed.
var errInvalidConfig = errors.New("configuration is invalid")

// loggedError marks a failure the logger has already reported.
type loggedError struct{ err error }

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }

// reported tells whether err has already reached stderr.
func reported(err error) bool {
	var le *loggedError
	return errors.Is(err, errInvalidConfig) || errors.As(err, &le)
}

// newLogger builds the process logger. Tests replace it.
var newLogger = func(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// main is the entry point for the retailprep binary. It reads the product
// catalog, maps it to the ingestion schema and writes JSONL.
func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		if !reported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	var (
		p        = config.Default()
		timeout  = config.DefaultHTTPTimeout
		verbose  bool
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "retailprep",
		Short: "Convert the public product catalog into retail ingestion JSONL",
		Long: `retailprep downloads a JSON array of product records, maps every record to
the retail ingestion schema (id, title, name, categories, priceInfo, images),
drops records with any missing field and writes one JSON object per line.

A summary of the resulting table is printed to stderr before the file is
written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.HTTP.Timeout = config.Duration(timeout)

			issues := config.ValidatePipeline(p)
			for _, iss := range issues {
				fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
			}
			if config.HasErrors(issues) {
				return errInvalidConfig
			}
			if validate {
				fmt.Fprintln(stderr, "configuration is valid")
				return nil
			}

			log, err := newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, p, log, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.Source.Locator, "source", p.Source.Locator, "catalog location: http(s) URL, file:// URL or path")
	f.StringVar(&p.Source.Kind, "source-kind", config.KindAuto, `force the source type ("file" or "http"); inferred from --source when empty`)
	f.StringVar(&p.Output.Path, "output", p.Output.Path, "JSONL output path")
	f.DurationVar(&timeout, "timeout", timeout, "HTTP fetch timeout")
	f.BoolVar(&p.HTTP.InsecureSkipVerify, "insecure-skip-verify", false, "skip TLS certificate verification")
	f.BoolVarP(&verbose, "verbose", "v", false, "enable debug logs")
	f.BoolVar(&validate, "validate", false, "validate the flags and exit")

	return cmd
}

func run(ctx context.Context, p config.Pipeline, log *zap.Logger, diag io.Writer) error {
	log.Debug("pipeline starting",
		zap.String("source", p.Source.Locator),
		zap.String("source_kind", p.Source.ResolvedKind()),
		zap.String("output", p.Output.Path))

	start := time.Now()
	st, err := pipeline.Run(ctx, p, log, diag)
	if err != nil {
		log.Error("pipeline failed",
			zap.String("kind", errs.Kind(err)),
			zap.Int("loaded", st.Loaded),
			zap.Error(err))
		return &loggedError{err: err}
	}

	log.Info("pipeline completed",
		zap.String("output", st.Output),
		zap.Int("loaded", st.Loaded),
		zap.Int("dropped", st.Dropped),
		zap.Int("written", st.Written),
		zap.Int64("bytes", st.Bytes),
		zap.String("xxh3", st.Digest),
		zap.Duration("took", time.Since(start).Truncate(time.Millisecond)))
	return nil
}
