// Package records defines the generic record shape that flows between the
// loader, the transformers and the writer.
package records

import "sort"

// Record is one decoded JSON object keyed by field name. Values are whatever
// encoding/json produced with UseNumber enabled: string, json.Number, bool,
// nil, []any or map[string]any.
type Record map[string]any

// Missing reports whether key is absent from r or holds a null value.
func (r Record) Missing(key string) bool {
	v, ok := r[key]
	return !ok || v == nil
}

// Columns returns the union of keys observed across recs, sorted by name.
// A column listed here may still be absent from an individual record; such a
// record is treated as having a missing value for it.
func Columns(recs []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range recs {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
