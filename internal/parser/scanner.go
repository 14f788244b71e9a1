package parser

import "strings"

// ScanComments finds every /** ... */ documentation comment in content.
// Quoted strings and unquoted url(...) values are skipped. When lineComments
// is set, // comments are skipped too (scss, less, stylus).
func ScanComments(content string, lineComments bool) []RawComment {
	comments := make([]RawComment, 0)
	line := 0
	n := len(content)

	for i := 0; i < n; i++ {
		c := content[i]

		switch {
		case c == '\n':
			line++

		case c == '"' || c == '\'':
			j := i + 1
			for j < n && content[j] != c && content[j] != '\n' {
				if content[j] == '\\' {
					j++
				}
				j++
			}
			if j < n && content[j] == '\n' {
				j--
			}
			i = j

		case c == '/' && i+1 < n && content[i+1] == '/' && lineComments:
			for i < n && content[i] != '\n' {
				i++
			}
			if i < n {
				line++
			}

		case c == '/' && i+1 < n && content[i+1] == '*':
			end := strings.Index(content[i+2:], "*/")
			if end < 0 {
				return comments
			}
			end += i + 4
			text := content[i:end]
			if isDocComment(text) {
				comments = append(comments, RawComment{Text: text, Line: line})
			}
			line += strings.Count(text, "\n")
			i = end - 1

		case (c == 'u' || c == 'U') && strings.HasPrefix(strings.ToLower(content[i:min(i+4, n)]), "url("):
			j := i + 4
			for j < n && (content[j] == ' ' || content[j] == '\t') {
				j++
			}
			if j < n && (content[j] == '"' || content[j] == '\'') {
				i = j - 1
				continue
			}
			for j < n && content[j] != ')' && content[j] != '\n' {
				j++
			}
			if j < n && content[j] == '\n' {
				j--
			}
			i = j
		}
	}

	return comments
}

// isDocComment reports whether a block comment opens with /** and is not
// the empty /**/ form.
func isDocComment(text string) bool {
	return strings.HasPrefix(text, "/**") && text != "/**/" && !strings.HasPrefix(text, "/***")
}
