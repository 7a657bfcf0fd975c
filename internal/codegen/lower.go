package codegen

import (
	"fmt"
	"strconv"

	"salad-rustgen/internal/common"
	"salad-rustgen/internal/diagnostic"
	"salad-rustgen/internal/rust"
	"salad-rustgen/internal/schema"
)

// saladAttrsPerLine is the number of entries per #[salad(...)] line.
const saladAttrsPerLine = 3

var (
	recordDerives = rust.Derive("Clone", "Debug")
	enumDerives   = rust.Derive("Clone", "Copy", "Debug", "PartialEq", "Eq")
	unionDerives  = rust.Derive("Clone", "Debug")
)

// lower converts one named schema into its item.
func (c *compilation) lower(s schema.Named) (rust.Item, error) {
	switch s := s.(type) {
	case *schema.Record:
		return c.lowerRecord(s)
	case *schema.Enum:
		return c.lowerEnum(s), nil
	case *schema.NamedUnion:
		return c.lowerUnion(s)
	default:
		return nil, fmt.Errorf("cannot lower %s schema", schema.Kind(s))
	}
}

func (c *compilation) lowerRecord(r *schema.Record) (rust.Item, error) {
	fields := make(rust.NamedFields, 0, len(r.Fields))

	for _, f := range r.Fields {
		ty, err := c.resolve(f.Type, r, f.Name)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}

		attrs, err := fieldAttrs(f.Props)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}

		fields = append(fields, rust.Field{
			Ident: rust.SanitizeFieldIdent(f.Name),
			Type:  ty,
			Docs:  f.Props.Doc,
			Attrs: attrs,
			Vis:   rust.VisPublic,
		})
	}

	return rust.Struct{
		Ident:  c.typeIdent(r),
		Docs:   r.Props.Doc,
		Attrs:  append(c.rootAttrs(r.Props), recordDerives),
		Vis:    rust.VisPublic,
		Fields: fields,
	}, nil
}

// lowerEnum emits a fieldless enum, or a unit struct for a single symbol.
func (c *compilation) lowerEnum(e *schema.Enum) rust.Item {
	if common.IsSingle(e.Symbols) {
		symbol := e.Symbols[0]

		docs := e.Props.Doc
		if len(docs) > 0 {
			docs = append(docs[:len(docs):len(docs)], "")
		}

		return rust.Struct{
			Ident: c.typeIdent(e),
			Docs:  append(docs, matchesDoc(symbol)),
			Attrs: append(c.rootAttrs(e.Props), asStrAttr(symbol), enumDerives),
			Vis:   rust.VisPublic,
		}
	}

	variants := make([]rust.Variant, 0, len(e.Symbols))
	seen := make(map[rust.Ident]string, len(e.Symbols))

	for _, symbol := range e.Symbols {
		ident := rust.SanitizeTypeIdent(symbol)

		if previous, ok := seen[ident]; ok {
			msg := fmt.Sprintf("symbol %q maps to variant %s already used by %q, dropping it", symbol, ident, previous)
			c.warn(diagnostic.CodeDroppedVariant, msg, e.Name, "")

			continue
		}

		seen[ident] = symbol

		variants = append(variants, rust.Variant{
			Ident: ident,
			Docs:  []string{matchesDoc(symbol)},
			Attrs: []rust.Attribute{asStrAttr(symbol)},
		})
	}

	return rust.Enum{
		Ident:    c.typeIdent(e),
		Docs:     e.Props.Doc,
		Attrs:    append(c.rootAttrs(e.Props), enumDerives),
		Vis:      rust.VisPublic,
		Variants: variants,
	}
}

// lowerUnion emits an enum with one tuple variant per member.
func (c *compilation) lowerUnion(u *schema.NamedUnion) (rust.Item, error) {
	payloads := make([]rust.Path, 0, len(u.Schemas))

	for _, member := range u.Schemas {
		if schema.IsNull(member) {
			continue
		}

		ty, err := c.resolve(member, u, itemLabel)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", schema.Kind(member), err)
		}

		payloads = append(payloads, ty)
	}

	return rust.Enum{
		Ident:    c.typeIdent(u),
		Docs:     u.Props.Doc,
		Attrs:    append(c.rootAttrs(u.Props), unionDerives),
		Vis:      rust.VisPublic,
		Variants: c.tupleVariants(payloads, u.Name),
	}, nil
}

// tupleVariants wraps each payload in a variant named after its type.
// Repeated names get a numeric suffix: Status, Status2.
func (c *compilation) tupleVariants(payloads []rust.Path, origin string) []rust.Variant {
	variants := make([]rust.Variant, 0, len(payloads))
	used := make(map[rust.Ident]int, len(payloads))

	for _, payload := range payloads {
		ident := c.presets.variantIdent(payload)

		used[ident]++
		if n := used[ident]; n > 1 {
			renamed := ident + rust.Ident(strconv.Itoa(n))
			c.warn(diagnostic.CodeRenamedVariant,
				fmt.Sprintf("variant %s for %s renamed to %s", ident, payload, renamed), origin, "")
			ident = renamed
		}

		variants = append(variants, rust.Variant{Ident: ident, Payload: payload})
	}

	return variants
}

// rootAttrs returns #[salad(root, base_uri = "...")] for document roots.
func (c *compilation) rootAttrs(props schema.Props) []rust.Attribute {
	if !props.DocumentRoot {
		return nil
	}

	return []rust.Attribute{c.documentRootAttr()}
}

func (c *compilation) documentRootAttr() rust.Attribute {
	return saladAttrs(rust.Word("root"), rust.NameValue("base_uri", rust.MustLit(c.config.BaseURI)))[0]
}

// fieldAttrs builds the #[salad(...)] lines of a record field.
func fieldAttrs(props schema.Props) ([]rust.Attribute, error) {
	var metas []rust.Meta

	if props.HasDefault() {
		lit, err := rust.NewLit(props.Default)
		if err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}

		metas = append(metas, rust.NameValue("default", lit))
	}

	pred := props.JSONLDPredicate

	switch pred.Kind {
	case schema.PredicateID:
		metas = append(metas, rust.Word("identifier"))
	case schema.PredicateMap:
		if pred.MapSubject != "" {
			metas = append(metas, rust.NameValue("map_key", rust.MustLit(pred.MapSubject)))
		}

		if pred.MapPredicate != "" {
			metas = append(metas, rust.NameValue("map_predicate", rust.MustLit(pred.MapPredicate)))
		}

		if pred.Subscope != "" {
			metas = append(metas, rust.NameValue("subscope", rust.MustLit(pred.Subscope)))
		}
	}

	return saladAttrs(metas...), nil
}

// saladAttrs groups metas into #[salad(...)] attributes of at most
// saladAttrsPerLine entries each.
func saladAttrs(metas ...rust.Meta) []rust.Attribute {
	var attrs []rust.Attribute

	for start := 0; start < len(metas); start += saladAttrsPerLine {
		end := min(start+saladAttrsPerLine, len(metas))

		attrs = append(attrs, rust.Attribute{
			Meta: rust.MetaList{Path: rust.SimplePath("salad"), Nested: metas[start:end]},
		})
	}

	return attrs
}

func asStrAttr(symbol string) rust.Attribute {
	return saladAttrs(rust.NameValue("as_str", rust.MustLit(symbol)))[0]
}

func matchesDoc(symbol string) string {
	return "Matches constant value `" + symbol + "`."
}
