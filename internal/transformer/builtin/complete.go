package builtin

import "retailprep/pkg/records"

// Complete removes any record that lacks a non-null value for some column.
// The column set is the union of keys across the whole input at the time
// Complete runs, so a field produced for any record is required of every
// record. Require adds fields that are mandatory even when no record carries
// them. Survivors keep their relative order.
type Complete struct {
	Require []string
}

// Apply implements transformer.Transformer. It never fails.
func (t Complete) Apply(in []records.Record) ([]records.Record, error) {
	cols := records.Columns(in)
	for _, f := range t.Require {
		if !contains(cols, f) {
			cols = append(cols, f)
		}
	}

	out := in[:0]
	for _, r := range in {
		ok := true
		for _, c := range cols {
			if r.Missing(c) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
