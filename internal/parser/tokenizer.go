package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// A name is only split off a tag body when a dash surrounded by whitespace
// separates it from the description. Greedy: the last separator on the line wins.
var nameRegex = regexp.MustCompile(`^\s*(.+)\s+[-–—]\s+`)

// Tokenize splits one raw /** ... */ comment into its free-text description
// and an ordered list of tags. startLine is the 0-based source line of the
// opening delimiter and is used to number each tag.
func Tokenize(raw string, startLine int) *Comment {
	return tokenizeLines(commentLines(raw), startLine)
}

// ParseTagLine tokenizes text that begins with an "@tag {type} name - description"
// line, optionally followed by a multi-line body. Body lines are taken
// verbatim, even when they start with "@".
func ParseTagLine(text string, line int) (Tag, bool) {
	first, rest, more := strings.Cut(text, "\n")
	c := tokenizeLines([]string{first}, line)
	if len(c.Tags) == 0 || c.Description != "" {
		return Tag{}, false
	}

	tag := c.Tags[0]
	if more {
		body := append([]string{tag.Description}, strings.Split(rest, "\n")...)
		tag.Description = joinTrimmed(body)
	}
	return tag, true
}

func tokenizeLines(lines []string, startLine int) *Comment {
	comment := &Comment{
		Tags: make([]Tag, 0),
		Line: startLine,
	}

	var (
		description []string
		current     *Tag
		body        []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Description = joinTrimmed(body)
		comment.Tags = append(comment.Tags, *current)
		current = nil
		body = nil
	}

	for i, line := range lines {
		name, rest, ok := splitTagLine(line)
		if !ok {
			if current == nil {
				description = append(description, line)
			} else {
				body = append(body, line)
			}
			continue
		}

		flush()
		current = &Tag{Tag: name, Line: startLine + i}

		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if strings.HasPrefix(rest, "{") {
			if typ, after, ok := splitType(rest); ok {
				current.Type = typ
				rest = strings.TrimLeftFunc(after, unicode.IsSpace)
			}
		}

		if m := nameRegex.FindStringSubmatchIndex(rest); m != nil {
			current.Name = strings.TrimSpace(rest[m[2]:m[3]])
			rest = rest[m[1]:]
		}

		body = append(body, rest)
	}
	flush()

	comment.Description = joinTrimmed(description)
	return comment
}

// commentLines strips the comment delimiters and the leading " * " gutter of
// every line. Indentation after the gutter is preserved.
func commentLines(raw string) []string {
	raw = strings.TrimPrefix(raw, "/**")
	raw = strings.TrimSuffix(strings.TrimRightFunc(raw, unicode.IsSpace), "*/")

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if i == 0 {
			lines[i] = strings.TrimLeft(line, " \t")
			continue
		}

		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
			lines[i] = trimmed
			continue
		}
		lines[i] = line
	}
	return lines
}

// splitTagLine reports whether line starts a tag and returns its identifier
// and the remaining text on the line.
func splitTagLine(line string) (string, string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "@") {
		return "", "", false
	}

	end := 1
	for end < len(trimmed) {
		r := rune(trimmed[end])
		if r == ' ' || r == '\t' || r == '{' {
			break
		}
		end++
	}

	name := trimmed[1:end]
	if name == "" {
		return "", "", false
	}
	first := []rune(name)[0]
	if !unicode.IsLetter(first) && first != '_' {
		return "", "", false
	}
	return name, trimmed[end:], true
}

// splitType extracts a balanced {type} prefix
func splitType(s string) (string, string, bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[1:i]), s[i+1:], true
			}
		}
	}
	return "", s, false
}

// joinTrimmed joins lines and drops blank lines at both ends
func joinTrimmed(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
