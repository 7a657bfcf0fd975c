// Package schema holds the normalized schema model consumed by the Rust code
// generator, and a loader that decodes it from YAML or JSON documents.
//
// The model is a closed sum: Record, Enum, Union, NamedUnion, Array,
// Primitive, and Ref. Named schemas (Record, Enum, NamedUnion) carry a dotted
// qualified name, an explicit namespace, and typed Props.
package schema
