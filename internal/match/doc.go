// Package match ranks known schema names against a misspelled one, for
// "did you mean" hints in diagnostics.
//
// Names are compared by Levenshtein similarity after normalization, which
// folds case and drops separators, so "command_line_tool" and
// "CommandLineTool" match exactly.
package match
