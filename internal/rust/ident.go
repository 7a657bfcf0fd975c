package rust

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"salad-rustgen/internal/match"
)

// Ident is a Rust identifier, possibly in raw form (r#name).
type Ident string

// String returns the identifier as written in source.
func (i Ident) String() string {
	return string(i)
}

// Bare returns the identifier without the raw prefix. Module files are named
// after the bare identifier.
func (i Ident) Bare() string {
	return strings.TrimPrefix(string(i), rawPrefix)
}

const rawPrefix = "r#"

// reservedWords lists Rust strict and reserved keywords.
var reservedWords = []string{
	"as", "async", "await", "break", "const", "continue", "crate",
	"dyn", "else", "enum", "extern", "false", "fn", "for", "if",
	"impl", "in", "let", "loop", "match", "mod", "move", "mut",
	"pub", "ref", "return", "Self", "self", "static", "struct",
	"super", "trait", "true", "type", "unsafe", "use", "where", "while",
	"abstract", "alignof", "become", "box", "do", "final", "gen", "macro",
	"offsetof", "override", "priv", "proc", "pure", "sizeof", "try",
	"typeof", "unsized", "virtual", "yield",
}

// Keywords that cannot be written as raw identifiers.
var nonRawKeywords = []string{"crate", "self", "Self", "super"}

// IsReserved reports whether name is a Rust keyword.
func IsReserved(name string) bool {
	return slices.Contains(reservedWords, name)
}

var (
	invalidTypeChars  = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)
	letterAfterSep    = regexp.MustCompile(`(^|[-_.]+)([a-zA-Z])`)
	digitAfterSep     = regexp.MustCompile(`(^|[-.])([0-9])`)
	sepLetterDigit    = regexp.MustCompile(`([a-zA-Z])[-_.]+([0-9])`)
	leftoverSep       = regexp.MustCompile(`[-.]`)
	invalidModChars   = regexp.MustCompile(`[^a-z0-9_]`)
	invalidLabelChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

	typeIdentCache sync.Map
)

// SanitizeTypeIdent converts a schema name segment into a PascalCase type
// identifier. A segment starting with a digit gets a leading underscore.
// Runs of separators count as one, so sanitizing a result again returns it
// unchanged.
//
// Examples:
//   - "command_line_tool" -> "CommandLineTool"
//   - "v1.0" -> "V1_0"
//   - "1st" -> "_1st"
//   - "self" -> "Self_"
func SanitizeTypeIdent(name string) Ident {
	if cached, ok := typeIdentCache.Load(name); ok {
		return cached.(Ident)
	}

	upper := cases.Upper(language.Und)

	value := invalidTypeChars.ReplaceAllString(name, ".")
	value = letterAfterSep.ReplaceAllStringFunc(value, func(m string) string {
		return upper.String(m[len(m)-1:])
	})
	value = digitAfterSep.ReplaceAllStringFunc(value, func(m string) string {
		return "_" + m[len(m)-1:]
	})
	value = sepLetterDigit.ReplaceAllStringFunc(value, func(m string) string {
		return m[:1] + m[len(m)-1:]
	})
	value = leftoverSep.ReplaceAllString(value, "")

	switch {
	case value == "":
		value = "Unnamed"
	case IsReserved(value):
		value += "_"
	}

	ident := Ident(value)
	typeIdentCache.Store(name, ident)

	return ident
}

// SanitizeFieldIdent returns name unchanged unless it is a reserved word, in
// which case it is escaped as a raw identifier. Keywords that cannot be raw
// identifiers get a trailing underscore instead.
func SanitizeFieldIdent(name string) Ident {
	if !IsReserved(name) {
		return Ident(name)
	}

	if slices.Contains(nonRawKeywords, name) {
		return Ident(name + "_")
	}

	return Ident(rawPrefix + name)
}

// SanitizeModuleIdent converts a namespace segment into a snake_case module
// identifier, escaping reserved words like SanitizeFieldIdent.
func SanitizeModuleIdent(segment string) Ident {
	tokens := match.TokenizeIdent(segment)
	value := invalidModChars.ReplaceAllString(strings.Join(tokens, "_"), "_")

	switch {
	case value == "":
		value = "_"
	case value[0] >= '0' && value[0] <= '9':
		value = "_" + value
	}

	return SanitizeFieldIdent(value)
}

// JoinIdent appends label to base with an underscore separator, replacing
// characters that cannot appear in an identifier. The result keeps the casing
// of both parts: JoinIdent("Parent", "field") is "Parent_field".
func JoinIdent(base Ident, label string) Ident {
	return Ident(base.Bare() + "_" + invalidLabelChars.ReplaceAllString(label, "_"))
}
