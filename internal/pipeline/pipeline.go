// Package pipeline runs the preprocessor end to end:
//
//	load (fetch + parse) → transform (catalog mapping) → filter (completeness)
//	→ summary (stderr) → write (JSONL)
//
// Stages run one after another on a single goroutine; each completes before
// the next starts. The first error aborts the run and nothing is written
// unless every earlier stage succeeded.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"retailprep/internal/catalog"
	"retailprep/internal/config"
	"retailprep/internal/datasource"
	"retailprep/internal/errs"
	jsonparser "retailprep/internal/parser/json"
	"retailprep/internal/sink/jsonl"
	"retailprep/internal/summary"
	"retailprep/internal/transformer/builtin"
	"retailprep/pkg/records"
)

// Function variables used as test seams. In production these point to the
// real implementations; tests can override them.
var (
	newSourceFn = datasource.New

	writeFileFn = jsonl.WriteFile
)

// Stats reports what a run did.
type Stats struct {
	Loaded  int // records parsed from the source
	Dropped int // records removed by the completeness filter
	Written int // lines written

	Bytes  int64
	Digest string // xxh3-64 of the output, hex
	Output string

	LoadDuration      time.Duration
	TransformDuration time.Duration
	FilterDuration    time.Duration
	WriteDuration     time.Duration
}

// Run executes one pass for p. The table summary is written to diag (pass
// io.Discard to suppress it). log may be nil.
func Run(ctx context.Context, p config.Pipeline, log *zap.Logger, diag io.Writer) (Stats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if diag == nil {
		diag = io.Discard
	}

	var st Stats

	// 1) Load.
	start := time.Now()
	recs, err := load(ctx, p)
	st.LoadDuration = time.Since(start)
	if err != nil {
		return st, fmt.Errorf("load: %w", err)
	}
	st.Loaded = len(recs)
	log.Debug("loaded source",
		zap.String("locator", p.Source.Locator),
		zap.Int("records", st.Loaded),
		zap.Duration("took", st.LoadDuration))

	// 2) Transform.
	start = time.Now()
	recs, err = catalog.Mapping().Apply(recs)
	st.TransformDuration = time.Since(start)
	if err != nil {
		return st, fmt.Errorf("transform: %w", err)
	}
	log.Debug("transformed records", zap.Duration("took", st.TransformDuration))

	// 3) Filter.
	start = time.Now()
	recs, err = builtin.Complete{Require: catalog.TargetFields}.Apply(recs)
	st.FilterDuration = time.Since(start)
	if err != nil {
		return st, fmt.Errorf("filter: %w", err)
	}
	st.Dropped = st.Loaded - len(recs)
	log.Debug("filtered incomplete records",
		zap.Int("kept", len(recs)),
		zap.Int("dropped", st.Dropped),
		zap.Duration("took", st.FilterDuration))

	// 4) Summary, before anything touches the output file.
	if err := summary.Render(diag, summary.Describe(recs)); err != nil {
		log.Warn("summary render failed", zap.Error(err))
	}

	// 5) Write.
	start = time.Now()
	res, err := writeFileFn(p.Output.Path, recs, jsonl.Options{KeyOrder: catalog.TargetFields})
	st.WriteDuration = time.Since(start)
	if err != nil {
		return st, fmt.Errorf("write: %w", err)
	}
	st.Written = res.Lines
	st.Bytes = res.Bytes
	st.Digest = res.DigestHex()
	st.Output = res.Path
	log.Debug("wrote output",
		zap.String("path", res.Path),
		zap.Int("lines", res.Lines),
		zap.Int64("bytes", res.Bytes),
		zap.Duration("took", st.WriteDuration))

	return st, nil
}

// load fetches the whole document before parsing so a broken connection is
// reported as a source failure rather than as malformed JSON. Cancellation
// while fetching is a source failure too; the context error stays reachable
// through errors.Is.
func load(ctx context.Context, p config.Pipeline) ([]records.Record, error) {
	src, err := newSourceFn(p)
	if err != nil {
		return nil, err
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, sourceErr(ctx, p.Source.Locator, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, sourceErr(ctx, p.Source.Locator, fmt.Errorf("read: %w", err))
	}

	return jsonparser.DecodeArray(bytes.NewReader(data))
}

// sourceErr classifies a fetch failure as *errs.SourceUnavailableError. When
// ctx is done its error is what gets wrapped.
func sourceErr(ctx context.Context, locator string, err error) error {
	var su *errs.SourceUnavailableError
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.As(err, &su) && errors.Is(err, ctxErr) {
			return err
		}
		return &errs.SourceUnavailableError{Locator: locator, Err: ctxErr}
	}
	if errors.As(err, &su) {
		return err
	}
	return &errs.SourceUnavailableError{Locator: locator, Err: err}
}
