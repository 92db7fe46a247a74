package records

import (
	"encoding/json"
	"strings"
)

// Kind is a bit set of JSON value kinds. Used as a mask, the zero Kind
// accepts anything; as a classification it means null.
type Kind uint8

const (
	KindString Kind = 1 << iota
	KindNumber
	KindBool
	KindArray
	KindObject
)

// KindScalar accepts strings and numbers.
const KindScalar = KindString | KindNumber

func (k Kind) String() string {
	if k == 0 {
		return "any"
	}
	var parts []string
	for _, e := range []struct {
		k    Kind
		name string
	}{
		{KindString, "string"},
		{KindNumber, "number"},
		{KindBool, "boolean"},
		{KindArray, "array"},
		{KindObject, "object"},
	} {
		if k&e.k != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// KindOf classifies a decoded JSON value. Null maps to the zero Kind.
func KindOf(v any) Kind {
	switch v.(type) {
	case string:
		return KindString
	case json.Number, float64, float32, int, int64, int32, uint, uint64, uint32:
		return KindNumber
	case bool:
		return KindBool
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return 0
	}
}

