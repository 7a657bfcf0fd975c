package rust

import "strings"

const indentUnit = "    "

func indent(depth int) string {
	if depth <= 0 {
		return ""
	}

	return strings.Repeat(indentUnit, depth)
}

// Visibility is an item visibility modifier.
type Visibility int

const (
	VisInherited Visibility = iota
	VisPublic
	VisCrate
)

// String returns the modifier including its trailing space.
func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "pub "
	case VisCrate:
		return "pub(crate) "
	default:
		return ""
	}
}

// Item is a named Rust item: Field, Struct, Enum, or Variant.
type Item interface {
	Node
	ItemIdent() Ident
	isItem()
}

// StructFields is the body of a struct: NamedFields or Tuple. A nil body
// renders a unit struct.
type StructFields interface {
	isStructFields()
}

// NamedFields is a brace-delimited field list.
type NamedFields []Field

func (NamedFields) isStructFields() {}
func (Tuple) isStructFields()       {}

// Field is a named struct field.
type Field struct {
	Ident Ident
	Type  Type
	Docs  []string
	Attrs []Attribute
	Vis   Visibility
}

// Render implements Node.
func (f Field) Render(depth int) string {
	var sb strings.Builder

	writePreamble(&sb, depth, f.Docs, f.Attrs)
	sb.WriteString(indent(depth) + f.Vis.String() + f.Ident.String() + ": " + f.Type.String() + ",\n")

	return sb.String()
}

// ItemIdent implements Item.
func (f Field) ItemIdent() Ident { return f.Ident }

// Struct is a struct item.
type Struct struct {
	Ident  Ident
	Docs   []string
	Attrs  []Attribute
	Vis    Visibility
	Fields StructFields
}

// Render implements Node.
func (s Struct) Render(depth int) string {
	var sb strings.Builder

	pad := indent(depth)

	writePreamble(&sb, depth, s.Docs, s.Attrs)
	sb.WriteString(pad + s.Vis.String() + "struct " + s.Ident.String())

	switch fields := s.Fields.(type) {
	case Tuple:
		sb.WriteString(fields.String() + ";\n")
	case NamedFields:
		if len(fields) == 0 {
			sb.WriteString(";\n")
			break
		}

		sb.WriteString(" {\n")

		for _, field := range fields {
			sb.WriteString(field.Render(depth + 1))
		}

		sb.WriteString(pad + "}\n")
	default:
		sb.WriteString(";\n")
	}

	return sb.String()
}

// ItemIdent implements Item.
func (s Struct) ItemIdent() Ident { return s.Ident }

// Enum is an enum item.
type Enum struct {
	Ident    Ident
	Docs     []string
	Attrs    []Attribute
	Vis      Visibility
	Variants []Variant
}

// Render implements Node.
func (e Enum) Render(depth int) string {
	var sb strings.Builder

	pad := indent(depth)

	writePreamble(&sb, depth, e.Docs, e.Attrs)
	sb.WriteString(pad + e.Vis.String() + "enum " + e.Ident.String())

	if len(e.Variants) == 0 {
		sb.WriteString(" {}\n")
		return sb.String()
	}

	sb.WriteString(" {\n")

	for _, variant := range e.Variants {
		sb.WriteString(variant.Render(depth + 1))
	}

	sb.WriteString(pad + "}\n")

	return sb.String()
}

// ItemIdent implements Item.
func (e Enum) ItemIdent() Ident { return e.Ident }

// Variant is an enum variant, either a unit variant or a tuple variant with a
// single payload type.
type Variant struct {
	Ident   Ident
	Docs    []string
	Attrs   []Attribute
	Payload Type
}

// Render implements Node.
func (v Variant) Render(depth int) string {
	var sb strings.Builder

	writePreamble(&sb, depth, v.Docs, v.Attrs)
	sb.WriteString(indent(depth) + v.Ident.String())

	if v.Payload != nil {
		sb.WriteString(NewTuple(v.Payload).String())
	}

	sb.WriteString(",\n")

	return sb.String()
}

// ItemIdent implements Item.
func (v Variant) ItemIdent() Ident { return v.Ident }

func (Field) isItem()   {}
func (Struct) isItem()  {}
func (Enum) isItem()    {}
func (Variant) isItem() {}

// writePreamble writes doc comment lines followed by attribute lines.
func writePreamble(sb *strings.Builder, depth int, docs []string, attrs []Attribute) {
	for _, line := range DocLines(docs) {
		sb.WriteString(indent(depth) + line + "\n")
	}

	for _, attr := range attrs {
		sb.WriteString(attr.Render(depth))
	}
}
