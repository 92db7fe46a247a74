// Package json implements the catalog document parser: a single top-level
// JSON array whose elements are objects, decoded into records.Record maps.
//
// It is deliberately strict about shape and lax about content:
//
//   - The root must be an array. Objects, primitives, NDJSON streams and
//     trailing data after the array are rejected.
//   - Every element must be an object. Nested values inside an object are
//     kept as decoded (map[string]any / []any) and left to the transformers.
//   - Numbers are decoded as json.Number so literals such as 19.99 or
//     1234567890123 survive unchanged through to the output.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"retailprep/internal/errs"
	"retailprep/pkg/records"
)

// DecodeArray reads one JSON array of objects from r and returns one record
// per element, in document order. Any shape or syntax problem is returned as
// *errs.MalformedInputError.
func DecodeArray(r io.Reader) ([]records.Record, error) {
	d := json.NewDecoder(r)
	d.UseNumber()

	tok, err := d.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed(-1, errors.New("empty document"))
		}
		return nil, malformed(-1, fmt.Errorf("decode root: %w", err))
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, malformed(-1, fmt.Errorf("root is %s, want array", describeToken(tok)))
	}

	out := make([]records.Record, 0, 64)
	for i := 0; d.More(); i++ {
		var elem any
		if err := d.Decode(&elem); err != nil {
			return nil, malformed(i, fmt.Errorf("decode: %w", err))
		}
		obj, ok := elem.(map[string]any)
		if !ok {
			return nil, malformed(i, fmt.Errorf("element is %s, want object", describeValue(elem)))
		}
		out = append(out, records.Record(obj))
	}

	// Closing bracket.
	if _, err := d.Token(); err != nil {
		return nil, malformed(-1, fmt.Errorf("decode array end: %w", err))
	}

	// Nothing but whitespace may follow the array.
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level array")
		}
		return nil, malformed(-1, err)
	}

	return out, nil
}

func malformed(index int, err error) error {
	return &errs.MalformedInputError{Index: index, Err: err}
}

func describeToken(tok json.Token) string {
	if d, ok := tok.(json.Delim); ok {
		if d == '{' {
			return "object"
		}
		return fmt.Sprintf("delimiter %q", d.String())
	}
	return describeValue(tok)
}

func describeValue(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
