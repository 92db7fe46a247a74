// Package transformer defines the record-slice transformation contract and the
// Chain that applies transformers in order.
package transformer

import "retailprep/pkg/records"

// Transformer rewrites a slice of records, in place where possible. A
// transformer may drop records by reslicing. A non-nil error aborts the run;
// the returned slice is then undefined.
type Transformer interface {
	Apply([]records.Record) ([]records.Record, error)
}

// Func adapts a plain function to Transformer.
type Func func([]records.Record) ([]records.Record, error)

// Apply implements Transformer.
func (f Func) Apply(in []records.Record) ([]records.Record, error) { return f(in) }

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer on the output of the previous one and stops at
// the first error.
func (c Chain) Apply(in []records.Record) ([]records.Record, error) {
	out := in
	for _, t := range c {
		var err error
		if out, err = t.Apply(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
