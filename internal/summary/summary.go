// Package summary describes the shape of a record set: how many rows, which
// columns, how many non-null values each column has and what kinds of value
// it holds. The CLI prints it to stderr before the output is written.
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"retailprep/pkg/records"
)

// Column is the profile of one column.
type Column struct {
	Name    string
	NonNull int
	Kinds   records.Kind // union of kinds seen among non-null values
}

// Table is the profile of a record set.
type Table struct {
	Rows    int
	Columns []Column
	// ApproxBytes estimates the in-memory payload: string and number
	// literal lengths plus key names, recursively. Map and slice overhead is
	// not counted.
	ApproxBytes uint64
}

// Describe profiles recs. Columns are the union of keys, sorted by name.
func Describe(recs []records.Record) Table {
	names := records.Columns(recs)
	idx := make(map[string]int, len(names))
	cols := make([]Column, len(names))
	for i, n := range names {
		idx[n] = i
		cols[i].Name = n
	}

	var size uint64
	for _, r := range recs {
		for k, v := range r {
			size += uint64(len(k)) + approxSize(v)
			if v == nil {
				continue
			}
			c := &cols[idx[k]]
			c.NonNull++
			c.Kinds |= records.KindOf(v)
		}
	}

	return Table{Rows: len(recs), Columns: cols, ApproxBytes: size}
}

// Render writes a human-readable table to w.
func Render(w io.Writer, t Table) error {
	p := message.NewPrinter(language.English)

	if _, err := p.Fprintf(w, "records: %d entries\n", t.Rows); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "columns (total %d):\n", len(t.Columns)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tKind")
	fmt.Fprintln(tw, "---\t------\t--------------\t----")
	for i, c := range t.Columns {
		kind := "null"
		if c.Kinds != 0 {
			kind = c.Kinds.String()
		}
		p.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", i, c.Name, c.NonNull, kind)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "memory usage: %s (approx.)\n", humanize.Bytes(t.ApproxBytes))
	return err
}

func approxSize(v any) uint64 {
	switch x := v.(type) {
	case string:
		return uint64(len(x))
	case json.Number:
		return uint64(len(x))
	case bool:
		return 1
	case []any:
		var n uint64
		for _, e := range x {
			n += approxSize(e)
		}
		return n
	case map[string]any:
		var n uint64
		for k, e := range x {
			n += uint64(len(k)) + approxSize(e)
		}
		return n
	case nil:
		return 0
	default:
		return 8
	}
}
