package rust

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// noneLiteral is the literal rendered for an absent value.
const noneLiteral = "Option::None"

// Lit is a rendered Rust literal.
type Lit struct {
	repr string
}

// NewLit converts value into a Rust literal.
func NewLit(value any) (Lit, error) {
	repr, err := Literal(value)
	if err != nil {
		return Lit{}, err
	}

	return Lit{repr: repr}, nil
}

// MustLit is like NewLit but panics on unsupported values. Intended for
// literals built from constants.
func MustLit(value any) Lit {
	lit, err := NewLit(value)
	if err != nil {
		panic(err)
	}

	return lit
}

// String returns the literal source text.
func (l Lit) String() string {
	return l.repr
}

// Literal renders a boolean, number, string, list, or nil as Rust literal
// syntax. Any other value fails with ErrUnsupportedLiteral.
func Literal(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return noneLiteral, nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return quoteString(v), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		entries := make([]string, rv.Len())

		for i := range rv.Len() {
			entry, err := Literal(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}

			entries[i] = entry
		}

		return "[" + strings.Join(entries, ", ") + "]", nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedLiteral, value)
}

// formatFloat renders f in shortest form, always marked as a float literal.
func formatFloat(f float64, bitSize int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedLiteral, f)
	}

	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s, nil
}

// quoteString escapes s like a JSON string without restricting it to ASCII,
// using Rust escape syntax for control characters.
func quoteString(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u{%x}`, r)
				continue
			}

			if r == utf8.RuneError {
				sb.WriteString(`\u{fffd}`)
				continue
			}

			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
