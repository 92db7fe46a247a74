// Package jsonl writes records as newline-delimited JSON: one compact object
// per line, keys in a stable order, no HTML escaping.
//
// WriteFile replaces the destination atomically (temp file in the same
// directory, fsync, rename), so a failed run leaves any previous file intact
// and never a truncated one. Every byte written is also fed to an xxh3
// hasher; the digest lets two runs be compared without diffing files.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/zeebo/xxh3"

	"retailprep/internal/errs"
	"retailprep/pkg/records"
)

// Options controls the line layout.
type Options struct {
	// KeyOrder lists keys written first, in this order, when present in a
	// record. Remaining keys follow sorted by name.
	KeyOrder []string
}

// Result describes what was written.
type Result struct {
	Path   string
	Lines  int
	Bytes  int64
	Digest uint64 // xxh3-64 of the file contents
}

// DigestHex returns Digest as 16 lowercase hex digits.
func (r Result) DigestHex() string {
	return fmt.Sprintf("%016x", r.Digest)
}

// Encode writes recs to w, one line each, and returns the line count, byte
// count and xxh3 digest of the bytes written.
func Encode(w io.Writer, recs []records.Record, opt Options) (Result, error) {
	h := xxh3.New()
	cw := &countingWriter{w: io.MultiWriter(w, h)}
	enc := newLineEncoder(opt)

	var res Result
	for i, r := range recs {
		line, err := enc.encode(r)
		if err != nil {
			return res, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := cw.Write(line); err != nil {
			return res, err
		}
		res.Lines++
	}
	res.Bytes = cw.n
	res.Digest = h.Sum64()
	return res, nil
}

// WriteFile atomically replaces path with the JSONL encoding of recs. All
// failures are returned as *errs.WriteError.
func WriteFile(path string, recs []records.Record, opt Options) (res Result, err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return res, &errs.WriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriterSize(tmp, 256<<10)
	res, err = Encode(bw, recs, opt)
	if err != nil {
		return res, &errs.WriteError{Path: path, Err: err}
	}
	if err = bw.Flush(); err != nil {
		return res, &errs.WriteError{Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return res, &errs.WriteError{Path: path, Err: err}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return res, &errs.WriteError{Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return res, &errs.WriteError{Path: path, Err: err}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return res, &errs.WriteError{Path: path, Err: err}
	}

	res.Path = path
	return res, nil
}

// lineEncoder renders one record per call into a reused buffer.
type lineEncoder struct {
	order []string
	rank  map[string]int
	buf   bytes.Buffer
	val   bytes.Buffer
	enc   *json.Encoder
	keys  []string
}

func newLineEncoder(opt Options) *lineEncoder {
	e := &lineEncoder{
		order: opt.KeyOrder,
		rank:  make(map[string]int, len(opt.KeyOrder)),
	}
	for i, k := range opt.KeyOrder {
		e.rank[k] = i
	}
	e.enc = json.NewEncoder(&e.val)
	e.enc.SetEscapeHTML(false)
	return e
}

// encode returns the line for r including the trailing newline. The slice is
// only valid until the next call.
func (e *lineEncoder) encode(r records.Record) ([]byte, error) {
	e.keys = e.keys[:0]
	for _, k := range e.order {
		if _, ok := r[k]; ok {
			e.keys = append(e.keys, k)
		}
	}
	rest := len(e.keys)
	for k := range r {
		if _, ok := e.rank[k]; !ok {
			e.keys = append(e.keys, k)
		}
	}
	sort.Strings(e.keys[rest:])

	e.buf.Reset()
	e.buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.writeValue(k); err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		e.buf.WriteByte(':')
		if err := e.writeValue(r[k]); err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
	}
	e.buf.WriteString("}\n")
	return e.buf.Bytes(), nil
}

func (e *lineEncoder) writeValue(v any) error {
	e.val.Reset()
	if err := e.enc.Encode(v); err != nil {
		return err
	}
	// json.Encoder always appends a newline.
	e.buf.Write(bytes.TrimSuffix(e.val.Bytes(), []byte{'\n'}))
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
