package schema

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"salad-rustgen/internal/common"
)

// ErrDuplicateSchema is returned when two definitions share a qualified name.
var ErrDuplicateSchema = errors.New("duplicate schema")

const graphKey = "$graph"

// Type keywords of named and inline type objects.
const (
	keywordRecord        = "record"
	keywordEnum          = "enum"
	keywordUnion         = "union"
	keywordArray         = "array"
	keywordDocumentation = "documentation"
)

// Document is a decoded, linked set of named schemas.
type Document struct {
	// Schemas lists named schemas in source order. Inline named schemas
	// follow the schema that declares them.
	Schemas []Named
}

// Lookup returns the named schema with the given qualified name.
func (d *Document) Lookup(name string) (Named, bool) {
	for _, s := range d.Schemas {
		if s.SchemaName() == name {
			return s, true
		}
	}

	return nil, false
}

// Names returns the qualified names of all schemas in order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Schemas))
	for i, s := range d.Schemas {
		names[i] = s.SchemaName()
	}

	return names
}

// LoadFile loads and parses a schema document from the given path.
func LoadFile(path string) (*Document, error) {
	return LoadFiles(path)
}

// LoadFiles loads several documents and links them as one; references may
// cross file boundaries.
func LoadFiles(paths ...string) (*Document, error) {
	dec := newDecoder()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
		}

		if err := dec.decode(data); err != nil {
			return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
		}
	}

	return dec.link(), nil
}

// Parse parses YAML or JSON data into a linked Document. The data is either a
// list of schema objects or an object with a "$graph" list.
func Parse(data []byte) (*Document, error) {
	dec := newDecoder()

	if err := dec.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}

	return dec.link(), nil
}

type decoder struct {
	schemas []Named
	byName  map[string]Named
	// refScope remembers the namespace each reference was written in.
	refScope map[*Ref]string
}

func newDecoder() *decoder {
	return &decoder{
		byName:   make(map[string]Named),
		refScope: make(map[*Ref]string),
	}
}

func (d *decoder) decode(data []byte) error {
	var root yaml.Node

	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}

	if len(root.Content) == 0 {
		return nil
	}

	entries, err := graphEntries(root.Content[0])
	if err != nil {
		return err
	}

	for _, entry := range entries {
		var raw rawObject

		if err := entry.Decode(&raw); err != nil {
			return err
		}

		if keyword(raw.Type) == keywordDocumentation {
			continue
		}

		if _, err := d.decodeNamed(&raw, "", entry.Line); err != nil {
			return err
		}
	}

	return nil
}

func graphEntries(node *yaml.Node) ([]*yaml.Node, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		return node.Content, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == graphKey {
				return graphEntries(node.Content[i+1])
			}
		}

		return []*yaml.Node{node}, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of schemas, got %v", node.Line, nodeKindName(node.Kind))
	}
}

// keyword returns the local part of a type keyword, so "record",
// "org.w3id.cwl.salad.record" and "https://w3id.org/cwl/salad#record" agree.
func keyword(t string) string {
	if idx := strings.LastIndexAny(t, ".#"); idx != -1 {
		return t[idx+1:]
	}

	return t
}

func (d *decoder) decodeNamed(raw *rawObject, scope string, line int) (Named, error) {
	if raw.Name == "" {
		return nil, fmt.Errorf("line %d: %s schema without a name", line, raw.Type)
	}

	name := AvroName(raw.Name)
	if !strings.Contains(name, common.NameSep) && scope != "" {
		name = common.Qualify(scope, name)
	}

	namespace := raw.Namespace
	if namespace == "" {
		namespace = common.Namespace(name)
	}

	props := Props{
		Doc:          raw.Doc,
		DocumentRoot: raw.DocumentRoot,
		Abstract:     raw.Abstract,
	}

	var named Named

	switch keyword(raw.Type) {
	case keywordRecord:
		named = &Record{Name: name, Namespace: namespace, Props: props}
	case keywordEnum:
		symbols := make([]string, len(raw.Symbols))
		for i, s := range raw.Symbols {
			symbols[i] = ShortFieldName(s)
		}

		named = &Enum{Name: name, Namespace: namespace, Symbols: symbols, Props: props}
	case keywordUnion:
		named = &NamedUnion{Name: name, Namespace: namespace, Props: props}
	default:
		return nil, fmt.Errorf("line %d: unsupported schema type %q for %s", line, raw.Type, name)
	}

	if _, ok := d.byName[name]; ok {
		return nil, fmt.Errorf("line %d: %w: %s", line, ErrDuplicateSchema, name)
	}

	// Register before decoding members so the container precedes any inline
	// schemas it declares.
	d.byName[name] = named
	d.schemas = append(d.schemas, named)

	switch s := named.(type) {
	case *Record:
		for _, rf := range raw.Fields {
			field, err := d.decodeField(rf, namespace)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}

			s.Fields = append(s.Fields, field)
		}
	case *NamedUnion:
		members := raw.Names
		if len(members) == 0 {
			members = raw.Types
		}

		for i := range members {
			member, err := d.decodeType(&members[i], namespace)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}

			s.Schemas = append(s.Schemas, member)
		}
	}

	return named, nil
}

func (d *decoder) decodeField(rf rawField, scope string) (Field, error) {
	name := ShortFieldName(rf.Name)
	if name == "" {
		return Field{}, fmt.Errorf("line %d: field without a name", rf.Type.Line)
	}

	ty, err := d.decodeType(&rf.Type, scope)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: %w", name, err)
	}

	props := Props{Doc: rf.Doc}

	if rf.Default.Kind != 0 {
		var value any

		if err := rf.Default.Decode(&value); err != nil {
			return Field{}, fmt.Errorf("field %s: default: %w", name, err)
		}

		props.Default = value
	}

	predicate, err := decodePredicate(&rf.JSONLDPredicate)
	if err != nil {
		return Field{}, fmt.Errorf("field %s: jsonldPredicate: %w", name, err)
	}

	props.JSONLDPredicate = predicate

	return Field{Name: name, Type: ty, Props: props}, nil
}

func (d *decoder) decodeType(node *yaml.Node, scope string) (Schema, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if IsPrimitive(node.Value) {
			return &Primitive{Type: node.Value}, nil
		}

		ref := &Ref{Name: AvroName(node.Value)}
		d.refScope[ref] = scope

		return ref, nil

	case yaml.SequenceNode:
		union := &Union{Schemas: make([]Schema, 0, len(node.Content))}

		for _, member := range node.Content {
			s, err := d.decodeType(member, scope)
			if err != nil {
				return nil, err
			}

			union.Schemas = append(union.Schemas, s)
		}

		return union, nil

	case yaml.MappingNode:
		var raw rawObject

		if err := node.Decode(&raw); err != nil {
			return nil, err
		}

		if keyword(raw.Type) == keywordArray {
			if raw.Items.Kind == 0 {
				return nil, fmt.Errorf("line %d: array without items", node.Line)
			}

			items, err := d.decodeType(&raw.Items, scope)
			if err != nil {
				return nil, err
			}

			return &Array{Items: items}, nil
		}

		return d.decodeNamed(&raw, scope, node.Line)

	default:
		return nil, fmt.Errorf("line %d: expected a type, got %v", node.Line, nodeKindName(node.Kind))
	}
}

func decodePredicate(node *yaml.Node) (JSONLDPredicate, error) {
	switch node.Kind {
	case 0:
		return JSONLDPredicate{}, nil
	case yaml.ScalarNode:
		if node.Value == "@id" {
			return JSONLDPredicate{Kind: PredicateID}, nil
		}

		return JSONLDPredicate{}, nil
	case yaml.MappingNode:
		var raw struct {
			MapSubject   string `yaml:"mapSubject"`
			MapPredicate string `yaml:"mapPredicate"`
			Subscope     string `yaml:"subscope"`
		}

		if err := node.Decode(&raw); err != nil {
			return JSONLDPredicate{}, err
		}

		if raw.MapSubject == "" && raw.MapPredicate == "" && raw.Subscope == "" {
			return JSONLDPredicate{}, nil
		}

		return JSONLDPredicate{
			Kind:         PredicateMap,
			MapSubject:   raw.MapSubject,
			MapPredicate: raw.MapPredicate,
			Subscope:     raw.Subscope,
		}, nil
	default:
		return JSONLDPredicate{}, fmt.Errorf("line %d: unexpected %v", node.Line, nodeKindName(node.Kind))
	}
}

// link replaces references to schemas defined in the decoded documents with
// the schemas themselves. References to unknown names stay as *Ref.
func (d *decoder) link() *Document {
	for _, named := range d.schemas {
		switch s := named.(type) {
		case *Record:
			for i := range s.Fields {
				s.Fields[i].Type = d.linkType(s.Fields[i].Type)
			}
		case *NamedUnion:
			for i := range s.Schemas {
				s.Schemas[i] = d.linkType(s.Schemas[i])
			}
		}
	}

	return &Document{Schemas: d.schemas}
}

func (d *decoder) linkType(s Schema) Schema {
	switch s := s.(type) {
	case *Ref:
		if scope := d.refScope[s]; scope != "" {
			if target, ok := d.byName[common.Qualify(scope, s.Name)]; ok {
				return target
			}
		}

		if target, ok := d.byName[s.Name]; ok {
			return target
		}

		return s
	case *Union:
		for i := range s.Schemas {
			s.Schemas[i] = d.linkType(s.Schemas[i])
		}

		return s
	case *Array:
		s.Items = d.linkType(s.Items)
		return s
	default:
		return s
	}
}
