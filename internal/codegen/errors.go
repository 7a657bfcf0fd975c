package codegen

import "errors"

var (
	// ErrUnknownPrimitive is returned when a primitive type has no preset mapping.
	ErrUnknownPrimitive = errors.New("unknown primitive")
	// ErrUnresolvedType is returned when a referenced schema is neither
	// resolved, preset, nor queued for lowering.
	ErrUnresolvedType = errors.New("unresolved type")
)
