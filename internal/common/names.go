package common

import "strings"

// UnknownStr is the string form of unrecognized enum values.
const UnknownStr = "unknown"

// NameSep separates the segments of a qualified schema name.
const NameSep = "."

// ShortName returns the last segment of a dotted qualified name.
// "org.w3id.cwl.cwl.CommandLineTool" -> "CommandLineTool".
func ShortName(name string) string {
	if idx := strings.LastIndex(name, NameSep); idx != -1 {
		return name[idx+1:]
	}

	return name
}

// Namespace returns everything before the last segment of a dotted qualified
// name, or "" for a bare name.
func Namespace(name string) string {
	if idx := strings.LastIndex(name, NameSep); idx != -1 {
		return name[:idx]
	}

	return ""
}

// Qualify joins namespace and name, skipping an empty namespace.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return namespace + NameSep + name
}

// HasNamePrefix reports whether name equals prefix or lies below it. Matching
// is segment-aware: "org.foo" is below "org" but "orgx.foo" is not.
func HasNamePrefix(name, prefix string) bool {
	if prefix == "" {
		return false
	}

	return name == prefix || strings.HasPrefix(name, prefix+NameSep)
}

// TrimNamePrefix returns the segments of namespace below prefix. A namespace
// that is not below prefix is returned whole.
func TrimNamePrefix(namespace, prefix string) []string {
	rest := namespace

	if HasNamePrefix(namespace, prefix) {
		rest = strings.TrimPrefix(strings.TrimPrefix(namespace, prefix), NameSep)
	}

	if rest == "" {
		return nil
	}

	return strings.Split(rest, NameSep)
}
