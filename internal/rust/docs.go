package rust

import (
	"regexp"
	"strings"
)

var bareURL = regexp.MustCompile(
	`https?://(?:www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b[-a-zA-Z0-9()@:%_+.~#?&/=]*`)

// DocLines converts documentation entries into "///" comment lines. Entries
// may span several lines and are trimmed of surrounding blank space; an empty
// entry yields a bare "///" paragraph break. Bare URLs are wrapped in angle
// brackets so rustdoc renders them as links.
func DocLines(docs []string) []string {
	var lines []string

	for _, doc := range docs {
		doc = strings.TrimSpace(strings.ReplaceAll(doc, "\r\n", "\n"))

		for _, line := range strings.Split(doc, "\n") {
			line = strings.TrimRight(line, " \t")
			if line == "" {
				lines = append(lines, "///")
				continue
			}

			lines = append(lines, "/// "+linkURLs(line))
		}
	}

	return lines
}

func linkURLs(line string) string {
	matches := bareURL.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return line
	}

	var sb strings.Builder

	last := 0

	for _, m := range matches {
		start, end := m[0], m[1]
		for end > start && line[end-1] == '.' {
			end--
		}

		if alreadyLinked(line, start) {
			continue
		}

		sb.WriteString(line[last:start])
		sb.WriteString("<" + line[start:end] + ">")

		last = end
	}

	sb.WriteString(line[last:])

	return sb.String()
}

// alreadyLinked reports whether the URL at start is part of markdown link or
// code syntax.
func alreadyLinked(line string, start int) bool {
	if start == 0 {
		return false
	}

	switch line[start-1] {
	case '<', '`', '[':
		return true
	case '(':
		return start >= 2 && line[start-2] == ']'
	}

	return false
}
