package rust

import (
	"strconv"
	"strings"
)

// Node is implemented by every syntax node.
type Node interface {
	// Render returns the source text of the node indented at depth (in units
	// of four spaces). Single-line nodes ignore depth.
	Render(depth int) string
}

// Type is a Rust type: Path, Reference, Slice, Array, or Tuple.
type Type interface {
	Node
	String() string
	isType()
}

// Reference is a reference type such as &'a mut T.
type Reference struct {
	Inner    Type
	Lifetime Lifetime
	Mutable  bool
}

// String renders the reference type.
func (r Reference) String() string {
	var sb strings.Builder

	sb.WriteByte('&')

	if r.Lifetime != "" {
		sb.WriteString(r.Lifetime.String())
		sb.WriteByte(' ')
	}

	if r.Mutable {
		sb.WriteString("mut ")
	}

	sb.WriteString(r.Inner.String())

	return sb.String()
}

// Render implements Node.
func (r Reference) Render(int) string { return r.String() }

// Slice is a slice type such as [T].
type Slice struct {
	Inner Type
}

// String renders the slice type.
func (s Slice) String() string {
	return "[" + s.Inner.String() + "]"
}

// Render implements Node.
func (s Slice) Render(int) string { return s.String() }

// Array is a fixed-length array type such as [T; 4].
type Array struct {
	Inner  Type
	Length int
}

// String renders the array type.
func (a Array) String() string {
	return "[" + a.Inner.String() + "; " + strconv.Itoa(a.Length) + "]"
}

// Render implements Node.
func (a Array) Render(int) string { return a.String() }

// Tuple is a tuple type such as (A, B). It is also used as the payload of
// tuple structs and tuple variants.
type Tuple struct {
	Items []Type
}

// NewTuple builds a tuple of items.
func NewTuple(items ...Type) Tuple {
	return Tuple{Items: items}
}

// String renders the tuple type.
func (t Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, item := range t.Items {
		parts[i] = item.String()
	}

	return "(" + strings.Join(parts, ", ") + ")"
}

// Render implements Node.
func (t Tuple) Render(int) string { return t.String() }

func (Reference) isType() {}
func (Slice) isType()     {}
func (Array) isType()     {}
func (Tuple) isType()     {}
