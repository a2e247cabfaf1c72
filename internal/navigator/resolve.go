package navigator

import (
	"fmt"
	"slices"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
	"github.com/oakwood-commons/jsonexplorer/internal/tree"
)

// Resolver looks up the value behind a display node's Ref.
type Resolver interface {
	Resolve(ref document.Ref) (document.Value, error)
}

// Resolve follows steps from v.
func Resolve(v document.Value, steps []Step) (document.Value, error) {
	for i, st := range steps {
		at := Format(steps[:i])
		if st.IsIndex {
			if v.Kind() != document.KindArray {
				return document.Value{}, fmt.Errorf("%w: %s is %s, not an array", ErrNotFound, at, tree.TypeName(v.Kind()))
			}
			if st.Index >= v.Len() {
				return document.Value{}, fmt.Errorf("%w: %s has %d elements", ErrNotFound, at, v.Len())
			}
			v = v.Index(st.Index)
			continue
		}
		if v.Kind() != document.KindObject {
			return document.Value{}, fmt.Errorf("%w: %s is %s, not an object", ErrNotFound, at, tree.TypeName(v.Kind()))
		}
		member, ok := v.Member(st.Key)
		if !ok {
			return document.Value{}, fmt.Errorf("%w: %s has no member %q", ErrNotFound, at, st.Key)
		}
		v = member
	}
	return v, nil
}

// StepsFor returns the path of the last node in trail, a chain of display
// nodes from the root down. Member names come from the document because
// labels may be truncated or ambiguous.
func StepsFor(r Resolver, trail []*tree.Node) ([]Step, error) {
	steps := make([]Step, 0, len(trail))
	for i := 1; i < len(trail); i++ {
		parent, child := trail[i-1], trail[i]
		pos := slices.Index(parent.Children, child)
		if pos < 0 {
			return nil, fmt.Errorf("%w: %q is not a child of %q", ErrNotFound, child.Label, parent.Label)
		}
		switch parent.Kind {
		case document.KindArray:
			steps = append(steps, Index(pos))
		case document.KindObject:
			pv, err := r.Resolve(parent.Ref)
			if err != nil {
				return nil, err
			}
			steps = append(steps, Key(pv.Key(pos)))
		default:
			return nil, fmt.Errorf("%w: %q has no children", ErrNotFound, parent.Label)
		}
	}
	return steps, nil
}
