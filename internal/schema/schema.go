package schema

import (
	"salad-rustgen/internal/common"
)

// Primitive type names.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeInt     = "int"
	TypeLong    = "long"
	TypeFloat   = "float"
	TypeDouble  = "double"
	TypeString  = "string"
)

var primitiveTypes = map[string]bool{
	TypeNull:    true,
	TypeBoolean: true,
	TypeInt:     true,
	TypeLong:    true,
	TypeFloat:   true,
	TypeDouble:  true,
	TypeString:  true,
}

// IsPrimitive reports whether name is a primitive type name.
func IsPrimitive(name string) bool {
	return primitiveTypes[name]
}

// Schema is one of *Record, *Enum, *Union, *NamedUnion, *Array, *Primitive, or
// *Ref.
type Schema interface {
	isSchema()
}

// Named is a schema with a qualified name: *Record, *Enum, or *NamedUnion.
type Named interface {
	Schema
	SchemaName() string
	SchemaNamespace() string
	SchemaProps() Props
}

// Record is a named struct-like schema.
type Record struct {
	Name      string
	Namespace string
	Fields    []Field
	Props     Props
}

// Field is a record field.
type Field struct {
	Name  string
	Type  Schema
	Props Props
}

// Enum is a named set of string symbols.
type Enum struct {
	Name      string
	Namespace string
	Symbols   []string
	Props     Props
}

// Union is an anonymous union of member schemas.
type Union struct {
	Schemas []Schema
}

// NamedUnion is a union with a qualified name. Unions synthesized from an
// anonymous Union carry Derived.
type NamedUnion struct {
	Name      string
	Namespace string
	Schemas   []Schema
	Props     Props
	Derived   *Derived
}

// Derived records where a synthesized union came from.
type Derived struct {
	// Parent is the enclosing named schema.
	Parent Named
	// Label is the field name, or a fixed label for nested positions.
	Label string
}

// Array is a list of Items.
type Array struct {
	Items Schema
}

// Primitive is a builtin scalar type such as "string" or "null".
type Primitive struct {
	Type string
}

// Ref is a reference to a named schema that is not part of the loaded
// document, such as a type provided by another package.
type Ref struct {
	Name string
}

// NewDerivedUnion builds the named union synthesized for an anonymous union
// found at label inside parent. It lives in parent's namespace under the name
// "<parent>.<label>".
func NewDerivedUnion(parent Named, label string, members []Schema, props Props) *NamedUnion {
	return &NamedUnion{
		Name:      parent.SchemaName() + common.NameSep + label,
		Namespace: parent.SchemaNamespace(),
		Schemas:   members,
		Props:     props,
		Derived:   &Derived{Parent: parent, Label: label},
	}
}

// IsNull reports whether s is the null primitive.
func IsNull(s Schema) bool {
	p, ok := s.(*Primitive)
	return ok && p.Type == TypeNull
}

// Kind returns a short name for the schema variant, for messages.
func Kind(s Schema) string {
	switch s.(type) {
	case *Record:
		return "record"
	case *Enum:
		return "enum"
	case *Union:
		return "union"
	case *NamedUnion:
		return "named union"
	case *Array:
		return "array"
	case *Primitive:
		return "primitive"
	case *Ref:
		return "reference"
	default:
		return common.UnknownStr
	}
}

func (r *Record) SchemaName() string      { return r.Name }
func (r *Record) SchemaNamespace() string { return r.Namespace }
func (r *Record) SchemaProps() Props      { return r.Props }

func (e *Enum) SchemaName() string      { return e.Name }
func (e *Enum) SchemaNamespace() string { return e.Namespace }
func (e *Enum) SchemaProps() Props      { return e.Props }

func (u *NamedUnion) SchemaName() string      { return u.Name }
func (u *NamedUnion) SchemaNamespace() string { return u.Namespace }
func (u *NamedUnion) SchemaProps() Props      { return u.Props }

func (*Record) isSchema()     {}
func (*Enum) isSchema()       {}
func (*Union) isSchema()      {}
func (*NamedUnion) isSchema() {}
func (*Array) isSchema()      {}
func (*Primitive) isSchema()  {}
func (*Ref) isSchema()        {}
