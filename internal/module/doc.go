// Package module implements the namespace-mirroring module tree that owns
// generated Rust items, and lowers it to a crate source layout.
//
// The root module is written to lib.rs together with one "pub mod" line per
// child. A module with children becomes a directory holding mod.rs; a leaf
// module becomes a single <name>.rs file.
package module
