// Package config defines the run configuration for the retail catalog
// preprocessor. The field mapping itself is fixed in code; the only knobs are
// where the catalog comes from, where the JSONL goes, and how the HTTP fetch
// behaves.
//
// Values are normally filled from CLI flags on top of Default(). The struct
// keeps JSON tags so a resolved configuration can be logged or dumped as-is:
//
//	{
//	  "source": { "locator": "https://example.com/products.json" },
//	  "output": { "path": "retail-products.jsonl" },
//	  "http":   { "timeout": "60s", "insecure_skip_verify": false }
//	}
package config

import (
	"strings"
	"time"
)

const (
	// DefaultSourceURL is the public product catalog the preprocessor reads
	// when no other locator is given.
	DefaultSourceURL = "https://raw.githubusercontent.com/BestBuyAPIs/open-data-set/master/products.json"

	// DefaultOutputPath is the JSONL file written in the working directory.
	DefaultOutputPath = "retail-products.jsonl"

	// DefaultHTTPTimeout bounds the single fetch attempt for URL sources.
	DefaultHTTPTimeout = 60 * time.Second
)

// Source kinds. KindAuto resolves to KindHTTP or KindFile from the locator.
const (
	KindAuto = ""
	KindFile = "file"
	KindHTTP = "http"
)

// Pipeline is the resolved configuration for one run.
type Pipeline struct {
	// Source describes where the catalog document is read from.
	Source Source `json:"source"`

	// Output describes where the JSONL result is written.
	Output Output `json:"output"`

	// HTTP tunes the client used when the source is a URL.
	HTTP HTTP `json:"http"`
}

// Source identifies the catalog document.
type Source struct {
	// Kind forces a source implementation. Leave empty to infer it from Locator.
	Kind string `json:"kind,omitempty"`

	// Locator is a filesystem path, a file:// URL, or an http(s) URL.
	Locator string `json:"locator"`
}

// Output identifies the destination file.
type Output struct {
	Path string `json:"path"`
}

// HTTP configures the fetch of URL sources. There is exactly one attempt.
type HTTP struct {
	Timeout            Duration `json:"timeout"`
	InsecureSkipVerify bool     `json:"insecure_skip_verify"`
}

// Default returns the configuration used when the binary runs with no flags.
func Default() Pipeline {
	return Pipeline{
		Source: Source{Locator: DefaultSourceURL},
		Output: Output{Path: DefaultOutputPath},
		HTTP:   HTTP{Timeout: Duration(DefaultHTTPTimeout)},
	}
}

// ResolvedKind returns the source kind, inferring it from the locator scheme
// when Kind is empty.
func (s Source) ResolvedKind() string {
	if s.Kind != KindAuto {
		return s.Kind
	}
	l := strings.ToLower(strings.TrimSpace(s.Locator))
	if strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") {
		return KindHTTP
	}
	return KindFile
}

// Duration is a time.Duration that encodes as a Go duration string in JSON.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
