// Package rust provides a small Rust syntax tree used as the output IR of the
// schema compiler.
//
// Every node renders itself; there is no separate emitter. Rendering rules:
//   - Paths join segments with "::" and list lifetime generics before type generics
//   - Items print doc comments first, then attributes, then the item header
//   - Bodies are indented one level (4 spaces) deeper than their enclosing item
//
// The package also holds the identifier and literal sanitizers, which are pure
// functions of their input.
package rust
