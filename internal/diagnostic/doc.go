// Package diagnostic collects the warnings and errors reported while
// compiling schemas or validating a project file.
//
// Warnings cover skipped duplicate schemas, dropped or renamed enum variants,
// and renamed modules. Unresolved references carry "did you mean"
// suggestions.
package diagnostic
