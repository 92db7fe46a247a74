// Package builtin contains the small, reusable record transformers the
// catalog mapping is assembled from. Each one mutates records in place and
// reports wrong-typed inputs as *errs.TransformationError.
package builtin

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"retailprep/internal/errs"
	"retailprep/pkg/records"
)

var errUnrenderable = errors.New("value cannot be rendered as text")

// check returns a TransformationError when v is not one of the accepted
// kinds. A zero accept mask accepts everything.
func check(index int, field string, accept records.Kind, v any) error {
	if accept == 0 || records.KindOf(v)&accept != 0 {
		return nil
	}
	return &errs.TransformationError{
		Index: index,
		Field: field,
		Err:   fmt.Errorf("got %s, want %s", describe(v), accept),
	}
}

func describe(v any) string {
	if k := records.KindOf(v); k != 0 {
		return k.String()
	}
	return fmt.Sprintf("%T", v)
}

// text renders a string or number as text. Numbers keep their JSON literal.
func text(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	default:
		return "", false
	}
}
