package transformer

import (
	"errors"
	"reflect"
	"sync/atomic"
	"testing"

	"retailprep/pkg/records"
)

/*
identityTransformer is a no-op transformer used in tests/benchmarks.
It returns the input slice without allocating or modifying it.
*/
type identityTransformer struct{}

func (identityTransformer) Apply(in []records.Record) ([]records.Record, error) { return in, nil }

/*
addFieldTransformer mutates each record in place by setting key -> value.
Used to verify mutation flows through Chain.
*/
type addFieldTransformer struct {
	key string
	val any
}

func (t addFieldTransformer) Apply(in []records.Record) ([]records.Record, error) {
	for i := range in {
		in[i][t.key] = t.val
	}
	return in, nil
}

/*
filterRequireTransformer keeps only records that have a non-nil value for the
provided key; it filters in place by reslicing the input.
*/
type filterRequireTransformer struct {
	key string
}

func (t filterRequireTransformer) Apply(in []records.Record) ([]records.Record, error) {
	out := in[:0]
	for _, r := range in {
		if !r.Missing(t.key) {
			out = append(out, r)
		}
	}
	return out, nil
}

/*
counterTransformer increments *calls whenever Apply is invoked. Used to verify
that each transformer in the chain is called exactly once, and how far a chain
got before failing.
*/
type counterTransformer struct {
	calls *int32
	err   error
}

func (t counterTransformer) Apply(in []records.Record) ([]records.Record, error) {
	atomic.AddInt32(t.calls, 1)
	return in, t.err
}

func makeRecs(n int) []records.Record {
	recs := make([]records.Record, n)
	for i := 0; i < n; i++ {
		recs[i] = records.Record{"id": i}
	}
	return recs
}

// --- Unit tests ---

/*
TestChainApply_Composition_Order verifies that Chain.Apply passes the output of
each transformer as the input to the next, in the declared order.
*/
func TestChainApply_Composition_Order(t *testing.T) {
	in := []records.Record{{"id": 1}}
	c := Chain{
		addFieldTransformer{key: "a", val: "first"},
		addFieldTransformer{key: "a", val: "second"},
		addFieldTransformer{key: "c", val: "third"},
	}
	out, err := c.Apply(in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := records.Record{"id": 1, "a": "second", "c": "third"}
	if !reflect.DeepEqual(out[0], want) {
		t.Fatalf("composition mismatch:\n got: %#v\nwant: %#v", out[0], want)
	}
}

/*
TestChainApply_FilterThenMutate verifies that in-place filtering followed by a
mutating transform yields the expected survivors in their input order.
*/
func TestChainApply_FilterThenMutate(t *testing.T) {
	in := []records.Record{
		{"keep": "yes", "id": 1},
		{"keep": nil, "id": 2},
		{"keep": "yes", "id": 3},
	}
	c := Chain{
		filterRequireTransformer{key: "keep"},
		addFieldTransformer{key: "tag", val: "ok"},
	}

	out, err := c.Apply(in)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out) != 2 || out[0]["id"] != 1 || out[1]["id"] != 3 {
		t.Fatalf("survivors = %#v; want ids 1,3", out)
	}
	for _, r := range out {
		if r["tag"] != "ok" {
			t.Fatalf("mutate-after-filter missing tag on %#v", r)
		}
	}
}

/*
TestChainApply_NilAndEmptyChain verifies that applying a nil or empty Chain
returns the input unchanged.
*/
func TestChainApply_NilAndEmptyChain(t *testing.T) {
	in := makeRecs(3)

	var cNil Chain
	outNil, err := cNil.Apply(in)
	if err != nil {
		t.Fatalf("nil chain: %v", err)
	}
	if len(outNil) != len(in) || &outNil[0] != &in[0] {
		t.Fatalf("nil chain should return same slice header")
	}

	outEmpty, err := Chain{}.Apply(in)
	if err != nil || !reflect.DeepEqual(outEmpty, in) {
		t.Fatalf("empty chain = (%#v, %v)", outEmpty, err)
	}
}

/*
TestChainApply_StopsAtFirstError ensures later transformers are not invoked
once one fails, and that the error is returned unchanged.
*/
func TestChainApply_StopsAtFirstError(t *testing.T) {
	var calls int32
	boom := errors.New("boom")
	c := Chain{
		counterTransformer{calls: &calls},
		counterTransformer{calls: &calls, err: boom},
		counterTransformer{calls: &calls},
	}

	out, err := c.Apply(makeRecs(2))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v; want boom", err)
	}
	if out != nil {
		t.Fatalf("out = %#v; want nil on error", out)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("calls=%d; want 2", got)
	}
}

func TestFunc(t *testing.T) {
	f := Func(func(in []records.Record) ([]records.Record, error) { return in[:1], nil })
	out, err := Chain{f, identityTransformer{}}.Apply(makeRecs(3))
	if err != nil || len(out) != 1 {
		t.Fatalf("Func chain = (%#v, %v)", out, err)
	}
}

/*
BenchmarkChain_Identity_N measures overhead of Chain.Apply with N no-op
transformers over a medium batch of records.
*/
func BenchmarkChain_Identity_1(b *testing.B)  { benchChainIdentity(b, 1) }
func BenchmarkChain_Identity_10(b *testing.B) { benchChainIdentity(b, 10) }

func benchChainIdentity(b *testing.B, n int) {
	in := makeRecs(20000)
	c := make(Chain, n)
	for i := range c {
		c[i] = identityTransformer{}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Apply(in); err != nil {
			b.Fatal(err)
		}
	}
}
