package codegen

import (
	"fmt"
	"maps"

	"salad-rustgen/internal/rust"
	"salad-rustgen/internal/schema"
)

// Container constructors.
const (
	listPathText   = "crate::core::List"
	optionPathText = "std::option::Option"
)

// defaultPresets maps primitive and well-known external names to runtime
// types.
var defaultPresets = map[string]string{
	schema.TypeBoolean:            "crate::core::Bool",
	schema.TypeInt:                "crate::core::Int",
	schema.TypeLong:               "crate::core::Long",
	schema.TypeFloat:              "crate::core::Float",
	schema.TypeDouble:             "crate::core::Double",
	schema.TypeString:             "crate::core::StrValue",
	"org.w3id.cwl.salad.Any":      "crate::core::Any",
	"org.w3id.cwl.cwl.Expression": "crate::core::StrValue",
}

// variantAliases renames union variants whose type name is an alias.
var variantAliases = map[rust.Ident]rust.Ident{
	"StrValue": "String",
}

type presetTable struct {
	types  map[string]rust.Path
	list   rust.Path
	option rust.Path
}

// newPresetTable parses the default presets merged with extra. Entries in
// extra override defaults.
func newPresetTable(extra map[string]string) (*presetTable, error) {
	merged := maps.Clone(defaultPresets)
	maps.Copy(merged, extra)

	t := &presetTable{
		types:  make(map[string]rust.Path, len(merged)),
		list:   rust.MustParsePath(listPathText),
		option: rust.MustParsePath(optionPathText),
	}

	for name, text := range merged {
		path, err := rust.ParsePath(text)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}

		t.types[name] = path
	}

	return t, nil
}

func (t *presetTable) lookup(name string) (rust.Path, bool) {
	path, ok := t.types[name]
	return path, ok
}

// List returns crate::core::List<inner>.
func (t *presetTable) List(inner rust.Path) (rust.Path, error) {
	return t.list.WithArgs(inner)
}

// Option returns std::option::Option<inner>.
func (t *presetTable) Option(inner rust.Path) (rust.Path, error) {
	return t.option.WithArgs(inner)
}

// unwrap returns the single type argument of p if p is base<T>.
func unwrap(p, base rust.Path) (rust.Path, bool) {
	if len(p.Segments) != len(base.Segments) || p.LeadingColon != base.LeadingColon {
		return rust.Path{}, false
	}

	for i, seg := range base.Segments {
		if p.Segments[i].Ident != seg.Ident {
			return rust.Path{}, false
		}
	}

	args := p.Last().Args
	if len(args) != 1 {
		return rust.Path{}, false
	}

	inner, ok := args[0].(rust.Path)

	return inner, ok
}

// variantIdent derives an enum variant identifier from the type it wraps:
// the last path segment, with aliases renamed, "List" appended for lists, and
// options looked through.
func (t *presetTable) variantIdent(p rust.Path) rust.Ident {
	if inner, ok := unwrap(p, t.option); ok {
		return t.variantIdent(inner)
	}

	if inner, ok := unwrap(p, t.list); ok {
		return t.variantIdent(inner) + "List"
	}

	ident := rust.Ident(p.Last().Ident.Bare())
	if alias, ok := variantAliases[ident]; ok {
		return alias
	}

	return ident
}
