package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DocLines is a documentation property: a single string or a list of strings.
type DocLines []string

// UnmarshalYAML implements custom YAML unmarshaling for DocLines.
// Accepts either a single string or an array of strings.
func (d *DocLines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*d = DocLines{str}
		} else {
			*d = DocLines{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*d = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array for doc, got %v", node.Line, nodeKindName(node.Kind))
	}
}

// rawObject is a named schema or inline type object as written in a document.
type rawObject struct {
	Type         string      `yaml:"type"`
	Name         string      `yaml:"name"`
	Namespace    string      `yaml:"namespace"`
	Doc          DocLines    `yaml:"doc"`
	Fields       rawFields   `yaml:"fields"`
	Symbols      []string    `yaml:"symbols"`
	Items        yaml.Node   `yaml:"items"`
	Names        []yaml.Node `yaml:"names"`
	Types        []yaml.Node `yaml:"types"`
	DocumentRoot bool        `yaml:"documentRoot"`
	Abstract     bool        `yaml:"abstract"`
}

type rawField struct {
	Name            string    `yaml:"name"`
	Type            yaml.Node `yaml:"type"`
	Doc             DocLines  `yaml:"doc"`
	Default         yaml.Node `yaml:"default"`
	JSONLDPredicate yaml.Node `yaml:"jsonldPredicate"`
}

// rawFields accepts a list of fields or a map keyed by field name whose
// values are either a field object or a bare type.
type rawFields []rawField

// UnmarshalYAML implements custom YAML unmarshaling for rawFields.
func (f *rawFields) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []rawField

		if err := node.Decode(&list); err != nil {
			return err
		}

		*f = list

		return nil

	case yaml.MappingNode:
		fields := make(rawFields, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]

			var field rawField

			if value.Kind == yaml.MappingNode && mappingHas(value, "type") {
				if err := value.Decode(&field); err != nil {
					return err
				}
			} else {
				field.Type = *value
			}

			field.Name = key.Value
			fields = append(fields, field)
		}

		*f = fields

		return nil

	default:
		return fmt.Errorf("line %d: expected list or map for fields, got %v", node.Line, nodeKindName(node.Kind))
	}
}

func mappingHas(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}

	return false
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "empty"
	}
}
