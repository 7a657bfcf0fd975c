package rust

import "strings"

// Meta is the content of an attribute: MetaPath, MetaNameValue, or MetaList.
type Meta interface {
	String() string
	isMeta()
}

// MetaPath is a bare path, as in #[non_exhaustive].
type MetaPath struct {
	Path Path
}

// MetaNameValue is a name-value pair, as in #[doc = "text"].
type MetaNameValue struct {
	Path  Path
	Value Lit
}

// MetaList is a path with nested metas, as in #[derive(Clone, Debug)].
type MetaList struct {
	Path   Path
	Nested []Meta
}

func (m MetaPath) String() string {
	return m.Path.String()
}

func (m MetaNameValue) String() string {
	return m.Path.String() + " = " + m.Value.String()
}

func (m MetaList) String() string {
	nested := make([]string, len(m.Nested))
	for i, meta := range m.Nested {
		nested[i] = meta.String()
	}

	return m.Path.String() + "(" + strings.Join(nested, ", ") + ")"
}

func (MetaPath) isMeta()      {}
func (MetaNameValue) isMeta() {}
func (MetaList) isMeta()      {}

// AttrStyle selects between outer (#[...]) and inner (#![...]) attributes.
type AttrStyle int

const (
	AttrOuter AttrStyle = iota
	AttrInner
)

// Attribute is a Rust attribute.
type Attribute struct {
	Meta  Meta
	Style AttrStyle
}

// String renders the attribute.
func (a Attribute) String() string {
	if a.Style == AttrInner {
		return "#![" + a.Meta.String() + "]"
	}

	return "#[" + a.Meta.String() + "]"
}

// Render implements Node.
func (a Attribute) Render(depth int) string {
	return indent(depth) + a.String() + "\n"
}

// Derive builds #[derive(...)] for the given trait names.
func Derive(traits ...string) Attribute {
	nested := make([]Meta, len(traits))
	for i, trait := range traits {
		nested[i] = MetaPath{Path: SimplePath(Ident(trait))}
	}

	return Attribute{Meta: MetaList{Path: SimplePath("derive"), Nested: nested}}
}

// Word returns a bare meta path made of a single identifier.
func Word(ident string) MetaPath {
	return MetaPath{Path: SimplePath(Ident(ident))}
}

// NameValue returns name = value.
func NameValue(name string, value Lit) MetaNameValue {
	return MetaNameValue{Path: SimplePath(Ident(name)), Value: value}
}
