package rust

import "errors"

var (
	// ErrUnsupportedLiteral is returned when a value has no Rust literal form.
	ErrUnsupportedLiteral = errors.New("unsupported literal")
	// ErrMalformedPath is returned when a textual path does not match the path grammar.
	ErrMalformedPath = errors.New("malformed path")
	// ErrMalformedGenerics is returned when a generic argument list cannot be parsed.
	ErrMalformedGenerics = errors.New("malformed generics")
)
