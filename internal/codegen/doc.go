// Package codegen compiles normalized schemas into a Rust module tree.
//
// The pipeline:
//  1. Filter abstract, external, and preset-covered schemas
//  2. Push the rest onto a worklist in reverse so they pop in input order
//  3. Drain the worklist, lowering each schema into one item; anonymous
//     multi-member unions found on the way are pushed as derived named unions
//  4. Emit the DocumentRoot enum at the crate root
//
// Type references never wait for lowering: the path of a named schema is a
// pure function of its namespace and name.
package codegen
