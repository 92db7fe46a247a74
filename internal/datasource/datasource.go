// Package datasource abstracts where the catalog document comes from. A
// Source yields the raw bytes; parsing happens elsewhere.
package datasource

import (
	"context"
	"fmt"
	"io"
	"strings"

	"retailprep/internal/config"
	"retailprep/internal/datasource/file"
	"retailprep/internal/datasource/httpds"
)

// Source opens the catalog document for reading. Implementations report
// retrieval failures as *errs.SourceUnavailableError.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// New builds the Source selected by the pipeline's source configuration.
func New(p config.Pipeline) (Source, error) {
	loc := strings.TrimSpace(p.Source.Locator)

	switch kind := p.Source.ResolvedKind(); kind {
	case config.KindHTTP:
		c := httpds.NewClient(httpds.Config{
			Timeout:            p.HTTP.Timeout.Std(),
			InsecureSkipVerify: p.HTTP.InsecureSkipVerify,
		})
		return httpds.NewSource(c, loc), nil
	case config.KindFile:
		return file.NewLocal(strings.TrimPrefix(loc, "file://")), nil
	default:
		return nil, fmt.Errorf("datasource: unknown source kind %q", kind)
	}
}
