package schema

import (
	"net/url"
	"slices"
	"strings"
)

// AvroName converts a schema URI such as "https://w3id.org/cwl/cwl#File" into
// its dotted form "org.w3id.cwl.cwl.File". Names that are not absolute URIs
// are returned unchanged.
func AvroName(name string) string {
	u, err := url.Parse(name)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return name
	}

	host := strings.Split(u.Hostname(), ".")
	slices.Reverse(host)

	parts := nonEmpty(host)
	parts = append(parts, nonEmpty(strings.Split(u.Path, "/"))...)
	parts = append(parts, nonEmpty(strings.Split(u.Fragment, "/"))...)

	return strings.Join(parts, ".")
}

// ShortFieldName returns the local part of a field or symbol identifier:
// "https://w3id.org/cwl/cwl#CommandLineTool/baseCommand" -> "baseCommand".
func ShortFieldName(name string) string {
	if idx := strings.LastIndex(name, "#"); idx != -1 {
		name = name[idx+1:]
	}

	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}

	return name
}

func nonEmpty(parts []string) []string {
	return slices.DeleteFunc(parts, func(s string) bool { return s == "" })
}
