package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes.
const (
	CodeDuplicateSchema = "duplicate-schema"
	CodeDroppedVariant  = "dropped-variant"
	CodeRenamedVariant  = "renamed-variant"
	CodeRenamedModule   = "renamed-module"
	CodeUnresolvedType  = "unresolved-type"
	CodeSkippedSchema   = "skipped-schema"
)

// Diagnostics collects the findings of one compilation or validation run,
// grouped by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding about a schema or one of its fields.
type Diagnostic struct {
	Code    string
	Message string
	// Schema is the qualified schema name, if any.
	Schema string
	// Field is the record field or config key, if any.
	Field string
	// Suggestions are known names close to an unresolved one.
	Suggestions []string
}

// AddError records an error.
func (d *Diagnostics) AddError(code, message, schema, field string, suggestions ...string) {
	d.Errors = append(d.Errors, Diagnostic{
		Code:        code,
		Message:     message,
		Schema:      schema,
		Field:       field,
		Suggestions: suggestions,
	})
}

// AddWarning records a warning.
func (d *Diagnostics) AddWarning(code, message, schema, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{Code: code, Message: message, Schema: schema, Field: field})
}

// AddInfo records an informational note.
func (d *Diagnostics) AddInfo(code, message, schema, field string) {
	d.Infos = append(d.Infos, Diagnostic{Code: code, Message: message, Schema: schema, Field: field})
}

// HasWarning reports whether a warning with code was recorded.
func (d *Diagnostics) HasWarning(code string) bool {
	for _, w := range d.Warnings {
		if w.Code == code {
			return true
		}
	}

	return false
}

// Error joins all recorded errors into one, or returns nil when there are
// none.
func (d *Diagnostics) Error() error {
	if len(d.Errors) == 0 {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String formats the diagnostic as "[schema] field: [code] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Schema != "" {
		prefix = append(prefix, "["+d.Schema+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
