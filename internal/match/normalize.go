package match

import (
	"slices"
	"strings"
	"unicode"
)

// typeNameSuffixes are trailing words that schema authors add or drop freely,
// such as "CommandInputRecordSchema" for "CommandInputRecord".
var typeNameSuffixes = []string{"schema", "type"}

// NormalizeName folds a schema name or identifier for fuzzy matching: words
// are split on separators and case changes, lowercased, and concatenated.
//
// Examples:
//   - "CommandLineTool" -> "commandlinetool"
//   - "org.w3id.cwl.File" -> "orgw3idcwlfile"
//   - "base_command" -> "basecommand"
func NormalizeName(s string) string {
	return strings.Join(TokenizeIdent(s), "")
}

// NormalizeTypeName is NormalizeName with a trailing "schema" or "type" word
// removed, unless it is the only word.
func NormalizeTypeName(s string) string {
	tokens := TokenizeIdent(s)
	if len(tokens) > 1 && slices.Contains(typeNameSuffixes, tokens[len(tokens)-1]) {
		tokens = tokens[:len(tokens)-1]
	}

	return strings.Join(tokens, "")
}

// TokenizeIdent splits an identifier into lowercase words.
//
// Examples:
//   - "CommandLineTool" -> ["command", "line", "tool"]
//   - "XMLParser" -> ["xml", "parser"]
//   - "v1.0" -> ["v1", "0"]
func TokenizeIdent(s string) []string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return words
}

// splitWords splits s on separators, then each field at case boundaries.
// The case of each word is preserved.
func splitWords(s string) []string {
	var words []string

	for _, field := range strings.FieldsFunc(s, isSeparator) {
		runes := []rune(field)
		start := 0

		for i := 1; i < len(runes); i++ {
			if isWordBoundary(runes, i) {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}

		words = append(words, string(runes[start:]))
	}

	return words
}

func isSeparator(r rune) bool {
	switch r {
	case '_', '-', ' ', '.', '#', '/':
		return true
	default:
		return false
	}
}

// isWordBoundary reports whether a new word starts at runes[i]: at a
// lower-to-upper change ("orderID" before 'I'), or at the last capital of an
// acronym followed by a lowercase letter ("XMLParser" before 'P').
func isWordBoundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
