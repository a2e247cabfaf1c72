// Package document holds the parsed, immutable representation of a JSON
// file. Values live in an arena owned by a Document and are addressed by
// Ref handles, so display code never holds pointers into a document that
// may already have been replaced by a newer load.
package document

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrStaleRef is returned when a Ref is resolved against a document other
// than the one that produced it.
var ErrStaleRef = errors.New("stale value reference")

var lastDocumentID atomic.Uint64

// entry is one arena slot. Containers list their children by arena index;
// objects keep member names in keys, parallel to children.
type entry struct {
	kind     Kind
	boolean  bool
	number   float64
	text     string // string value, or the literal text of a number
	children []int32
	keys     []string
}

// Document owns every value parsed from a single input.
type Document struct {
	id      uint64
	entries []entry
	root    int32
}

// Ref is a non-owning handle to a value inside a specific Document.
// The zero Ref resolves nowhere.
type Ref struct {
	doc   uint64
	index int32
}

// IsZero reports whether the Ref was never assigned.
func (r Ref) IsZero() bool { return r.doc == 0 }

func (r Ref) String() string {
	if r.IsZero() {
		return "ref(nil)"
	}
	return fmt.Sprintf("ref(%d:%d)", r.doc, r.index)
}

func newDocument(entries []entry, root int32) *Document {
	return &Document{
		id:      lastDocumentID.Add(1),
		entries: entries,
		root:    root,
	}
}

// ID returns the identity stamped into every Ref handed out by this document.
func (d *Document) ID() uint64 { return d.id }

// Len returns the total number of values in the document.
func (d *Document) Len() int { return len(d.entries) }

// Root returns the top-level value.
func (d *Document) Root() Value {
	return Value{doc: d, index: d.root}
}

// Resolve maps a Ref back to its Value.
func (d *Document) Resolve(ref Ref) (Value, error) {
	if d == nil || ref.doc != d.id {
		return Value{}, ErrStaleRef
	}
	if ref.index < 0 || int(ref.index) >= len(d.entries) {
		return Value{}, fmt.Errorf("%w: index %d out of range", ErrStaleRef, ref.index)
	}
	return Value{doc: d, index: ref.index}, nil
}

// Value is a read-only view of one value in a Document. The zero Value
// reports KindInvalid.
type Value struct {
	doc   *Document
	index int32
}

func (v Value) entry() *entry {
	if v.doc == nil {
		return nil
	}
	return &v.doc.entries[v.index]
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	e := v.entry()
	if e == nil {
		return KindInvalid
	}
	return e.kind
}

// Ref returns the stable handle for this value.
func (v Value) Ref() Ref {
	if v.doc == nil {
		return Ref{}
	}
	return Ref{doc: v.doc.id, index: v.index}
}

// Bool returns the boolean payload; false for other kinds.
func (v Value) Bool() bool {
	if e := v.entry(); e != nil && e.kind == KindBool {
		return e.boolean
	}
	return false
}

// Float returns the numeric payload; 0 for other kinds.
func (v Value) Float() float64 {
	if e := v.entry(); e != nil && e.kind == KindNumber {
		return e.number
	}
	return 0
}

// Literal returns the number exactly as written in the source, if known.
func (v Value) Literal() string {
	if e := v.entry(); e != nil && e.kind == KindNumber {
		return e.text
	}
	return ""
}

// Text returns the string payload; empty for other kinds.
func (v Value) Text() string {
	if e := v.entry(); e != nil && e.kind == KindString {
		return e.text
	}
	return ""
}

// Len returns the number of elements or members of a container.
func (v Value) Len() int {
	if e := v.entry(); e != nil {
		return len(e.children)
	}
	return 0
}

// Index returns the i-th child of a container in source order.
func (v Value) Index(i int) Value {
	e := v.entry()
	if e == nil || i < 0 || i >= len(e.children) {
		return Value{}
	}
	return Value{doc: v.doc, index: e.children[i]}
}

// Key returns the member name of the i-th child of an object.
func (v Value) Key(i int) string {
	e := v.entry()
	if e == nil || i < 0 || i >= len(e.keys) {
		return ""
	}
	return e.keys[i]
}

// Member looks up an object member by name.
func (v Value) Member(name string) (Value, bool) {
	e := v.entry()
	if e == nil || e.kind != KindObject {
		return Value{}, false
	}
	for i, k := range e.keys {
		if k == name {
			return Value{doc: v.doc, index: e.children[i]}, true
		}
	}
	return Value{}, false
}

// Document returns the owning document.
func (v Value) Document() *Document { return v.doc }
