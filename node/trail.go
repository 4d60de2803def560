package node

import "reflect"

// Trail is the set of struct types entered on the current path from the root.
// It is immutable: With returns an extended trail and leaves the receiver untouched,
// so sibling branches never see each other's types. The nil *Trail is empty.
type Trail struct {
	typ    reflect.Type
	parent *Trail
	depth  int
}

// With returns a trail that also contains t.
func (tr *Trail) With(t reflect.Type) *Trail {
	return &Trail{typ: t, parent: tr, depth: tr.Len() + 1}
}

// Contains reports whether t was already entered on this path.
func (tr *Trail) Contains(t reflect.Type) bool {
	for n := tr; n != nil; n = n.parent {
		if n.typ == t {
			return true
		}
	}

	return false
}

// Len returns the number of types on the trail.
func (tr *Trail) Len() int {
	if tr == nil {
		return 0
	}

	return tr.depth
}

// Types returns the trail in root-to-leaf order.
func (tr *Trail) Types() []reflect.Type {
	out := make([]reflect.Type, tr.Len())
	for n := tr; n != nil; n = n.parent {
		out[n.depth-1] = n.typ
	}

	return out
}
