package document

import "fmt"

// Kind tags the variant held by a Value.
//
// The numeric values mirror the 1-based value-type enumeration used by the
// editor mapping: Bool through Object occupy 1..5, Null sits below them and
// Undefined above.
type Kind uint8

const (
	KindNull      Kind = 0x0
	KindBool      Kind = 0x1
	KindNumber    Kind = 0x2
	KindString    Kind = 0x3
	KindArray     Kind = 0x4
	KindObject    Kind = 0x5
	KindUndefined Kind = 0x80

	// KindInvalid is reported by the zero Value.
	KindInvalid Kind = 0xFF
)

// IsContainer reports whether the kind holds child values.
func (k Kind) IsContainer() bool {
	return k == KindArray || k == KindObject
}

// IsScalar reports whether the kind is a known leaf variant.
func (k Kind) IsScalar() bool {
	switch k {
	case KindNull, KindBool, KindNumber, KindString, KindUndefined:
		return true
	case KindArray, KindObject, KindInvalid:
		return false
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindUndefined:
		return "undefined"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}
