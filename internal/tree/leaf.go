package tree

import (
	"math"
	"strconv"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
)

const unknownType = "unknown"

// TypeName returns the display name of a kind as it appears in node labels.
func TypeName(k document.Kind) string {
	switch k {
	case document.KindBool:
		return "Bool"
	case document.KindNumber:
		return "Double"
	case document.KindString:
		return "String"
	case document.KindArray:
		return "Array"
	case document.KindObject:
		return "Object"
	case document.KindNull:
		return "Null"
	case document.KindUndefined:
		return "Undefined"
	case document.KindInvalid:
		return unknownType
	default:
		return unknownType
	}
}

// FormatLeaf renders a scalar as a (type name, display value) pair.
// Strings are wrapped in quotes without escaping. Containers and
// unrecognized kinds yield "unknown" for both so projection never fails.
func FormatLeaf(v document.Value) (typeName, display string) {
	switch v.Kind() {
	case document.KindBool:
		if v.Bool() {
			return "Bool", "True"
		}
		return "Bool", "False"
	case document.KindNumber:
		return "Double", FormatNumber(v.Float())
	case document.KindString:
		return "String", `"` + v.Text() + `"`
	case document.KindNull:
		return "Null", "Null"
	case document.KindUndefined:
		return "Undefined", "Undefined"
	case document.KindArray, document.KindObject, document.KindInvalid:
		return unknownType, unknownType
	default:
		return unknownType, unknownType
	}
}

// FormatNumber renders f with the shortest digits that round-trip.
// Plain decimal notation is used for magnitudes in [1e-6, 1e21); values
// outside that range fall back to exponent form.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
