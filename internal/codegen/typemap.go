package codegen

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"salad-rustgen/internal/common"
	"salad-rustgen/internal/diagnostic"
	"salad-rustgen/internal/match"
	"salad-rustgen/internal/rust"
	"salad-rustgen/internal/schema"
)

// Labels of synthesized unions that are not found directly on a field.
const (
	itemLabel  = "item"
	itemSuffix = "_" + itemLabel
)

const maxSuggestions = 3

// resolve maps s to the Rust type of a value of that schema. enclosing and
// label name the position of s, and are used to name unions synthesized
// from anonymous multi-member unions.
func (c *compilation) resolve(s schema.Schema, enclosing schema.Named, label string) (rust.Path, error) {
	switch s := s.(type) {
	case *schema.Primitive:
		if s.Type != schema.TypeNull {
			if path, ok := c.presets.lookup(s.Type); ok {
				return path, nil
			}
		}

		return rust.Path{}, fmt.Errorf("%w: %s", ErrUnknownPrimitive, s.Type)

	case *schema.Ref:
		return c.pathOf(s.Name, enclosing, label)

	case *schema.Record:
		return c.pathOf(s.Name, enclosing, label)

	case *schema.Enum:
		return c.pathOf(s.Name, enclosing, label)

	case *schema.NamedUnion:
		return c.pathOf(s.Name, enclosing, label)

	case *schema.Array:
		inner, err := c.resolve(s.Items, enclosing, label+itemSuffix)
		if err != nil {
			return rust.Path{}, err
		}

		return c.presets.List(inner)

	case *schema.Union:
		return c.resolveUnion(s, enclosing, label)

	default:
		return rust.Path{}, fmt.Errorf("unsupported schema %T", s)
	}
}

// resolveUnion implements union transparency: a union with one non-null
// member is that member (optional when null was present); a union with more
// members becomes a derived named union, synthesized once per position.
func (c *compilation) resolveUnion(u *schema.Union, enclosing schema.Named, label string) (rust.Path, error) {
	members := make([]schema.Schema, 0, len(u.Schemas))

	for _, member := range u.Schemas {
		if !schema.IsNull(member) {
			members = append(members, member)
		}
	}

	nullable := len(members) < len(u.Schemas)

	var (
		path rust.Path
		err  error
	)

	switch {
	case common.IsEmpty(members):
		return rust.Path{}, fmt.Errorf("%w: %s", ErrUnknownPrimitive, schema.TypeNull)
	case common.IsSingle(members):
		path, err = c.resolve(members[0], enclosing, label)
	default:
		derivedLabel, synthesized := c.derivedLabel(enclosing, label, members)
		name := enclosing.SchemaName() + common.NameSep + derivedLabel

		if !synthesized {
			derived := schema.NewDerivedUnion(enclosing, derivedLabel, members, schema.Props{})
			c.reg.push(derived)
			c.logger.Debug().Str("schema", name).Int("members", len(members)).Msg("synthesized union")
		}

		path, err = c.pathOf(name, enclosing, label)
	}

	if err != nil {
		return rust.Path{}, err
	}

	if nullable {
		return c.presets.Option(path)
	}

	return path, nil
}

// derivedLabel returns the label of the union of members synthesized at label
// inside enclosing, and whether it was synthesized already. A label taken by
// another schema, or by a union of other members, gets a numeric suffix.
func (c *compilation) derivedLabel(enclosing schema.Named, label string, members []schema.Schema) (string, bool) {
	candidate := label

	for n := 2; ; n++ {
		existing, ok := c.reg.lookupKnown(enclosing.SchemaName() + common.NameSep + candidate)
		if !ok {
			return candidate, false
		}

		if u, isUnion := existing.(*schema.NamedUnion); isUnion && u.Derived != nil && reflect.DeepEqual(u.Schemas, members) {
			return candidate, true
		}

		candidate = label + strconv.Itoa(n)
	}
}

// pathOf returns the path of a named type: a preset, an already lowered
// schema, or the eventual path of a queued one.
func (c *compilation) pathOf(name string, enclosing schema.Named, label string) (rust.Path, error) {
	if path, ok := c.presets.lookup(name); ok {
		return path, nil
	}

	if !c.isExternal(name) {
		if path, ok := c.reg.lookup(name); ok {
			return path, nil
		}

		if s, ok := c.reg.lookupKnown(name); ok {
			return c.modulePath(s.SchemaNamespace()).Join(c.typeIdent(s)), nil
		}
	}

	suggestions := match.Suggest(name, c.reg.names(), maxSuggestions)

	var field, where string
	if enclosing != nil {
		field = label
		where = enclosing.SchemaName()
	}

	c.diags.AddError(diagnostic.CodeUnresolvedType, "unresolved type "+name, where, field, suggestions...)

	if len(suggestions) > 0 {
		return rust.Path{}, fmt.Errorf("%w: %s (did you mean %s?)",
			ErrUnresolvedType, name, strings.Join(suggestions, ", "))
	}

	return rust.Path{}, fmt.Errorf("%w: %s", ErrUnresolvedType, name)
}

// isExternal reports whether name belongs to another package and is only
// reachable through presets.
func (c *compilation) isExternal(name string) bool {
	for _, prefix := range c.config.ExternalPrefixes {
		if common.HasNamePrefix(name, prefix) {
			return true
		}
	}

	return c.config.Package != "" && !common.HasNamePrefix(name, c.config.Package)
}

// moduleIdents maps a namespace to module identifiers relative to the
// configured package. A top-level module named like one of the root modules
// gets a trailing underscore.
func (c *compilation) moduleIdents(namespace string) []rust.Ident {
	segments := common.TrimNamePrefix(namespace, c.config.Package)

	idents := make([]rust.Ident, len(segments))
	for i, seg := range segments {
		idents[i] = rust.SanitizeModuleIdent(seg)
	}

	if len(idents) > 0 && c.isRootModule(idents[0]) {
		renamed := rust.Ident(idents[0].Bare() + "_")

		if !c.renamedModules[idents[0]] {
			c.renamedModules[idents[0]] = true
			c.warn(diagnostic.CodeRenamedModule,
				fmt.Sprintf("module %s is reserved for the runtime, using %s", idents[0], renamed), namespace, "")
		}

		idents[0] = renamed
	}

	return idents
}

func (c *compilation) isRootModule(ident rust.Ident) bool {
	for _, name := range c.config.RootModules {
		if rust.SanitizeModuleIdent(name) == ident {
			return true
		}
	}

	return false
}

func (c *compilation) modulePath(namespace string) rust.Path {
	return rust.SimplePath(append([]rust.Ident{"crate"}, c.moduleIdents(namespace)...)...)
}

// typeIdent returns the item identifier of a named schema. Derived unions are
// named after their enclosing type and label, e.g. Parent_field.
func (c *compilation) typeIdent(s schema.Named) rust.Ident {
	if u, ok := s.(*schema.NamedUnion); ok && u.Derived != nil {
		return rust.JoinIdent(c.typeIdent(u.Derived.Parent), u.Derived.Label)
	}

	return rust.SanitizeTypeIdent(common.ShortName(s.SchemaName()))
}
