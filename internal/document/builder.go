package document

import (
	"fmt"
	"strconv"
)

// Index identifies a value while a Builder is still assembling it.
type Index int32

// Member pairs an object key with a value built earlier.
type Member struct {
	Key   string
	Value Index
}

// Builder assembles a Document bottom-up. Children must be added before
// the container that holds them. A Builder must not be reused after Build.
type Builder struct {
	entries []entry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make([]entry, 0, 16)}
}

func (b *Builder) add(e entry) Index {
	b.entries = append(b.entries, e)
	return Index(len(b.entries) - 1)
}

func (b *Builder) Null() Index      { return b.add(entry{kind: KindNull}) }
func (b *Builder) Undefined() Index { return b.add(entry{kind: KindUndefined}) }
func (b *Builder) Bool(v bool) Index {
	return b.add(entry{kind: KindBool, boolean: v})
}
func (b *Builder) String(s string) Index {
	return b.add(entry{kind: KindString, text: s})
}

func (b *Builder) Number(f float64) Index {
	return b.add(entry{kind: KindNumber, number: f, text: strconv.FormatFloat(f, 'g', -1, 64)})
}

// NumberLiteral records a number from its JSON text. Literals outside the
// float64 range are rejected.
func (b *Builder) NumberLiteral(lit string) (Index, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", lit, err)
	}
	return b.add(entry{kind: KindNumber, number: f, text: lit}), nil
}

func (b *Builder) Array(elems ...Index) Index {
	children := make([]int32, len(elems))
	for i, e := range elems {
		children[i] = int32(e)
	}
	return b.add(entry{kind: KindArray, children: children})
}

// Object adds an object. A repeated key keeps its first position and takes
// the value of its last occurrence.
func (b *Builder) Object(members ...Member) Index {
	keys := make([]string, 0, len(members))
	children := make([]int32, 0, len(members))
	seen := make(map[string]int, len(members))
	for _, m := range members {
		if pos, dup := seen[m.Key]; dup {
			children[pos] = int32(m.Value)
			continue
		}
		seen[m.Key] = len(keys)
		keys = append(keys, m.Key)
		children = append(children, int32(m.Value))
	}
	return b.add(entry{kind: KindObject, keys: keys, children: children})
}

// Build seals the arena with root as the top-level value.
func (b *Builder) Build(root Index) *Document {
	entries := b.entries
	b.entries = nil
	return newDocument(entries, int32(root))
}
