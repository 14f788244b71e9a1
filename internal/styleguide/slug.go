package styleguide

import (
	"strings"
	"unicode"
)

// Slug lowercases name, turns whitespace into hyphens and percent-encodes
// everything outside the URI-component safe set.
func Slug(name string) string {
	lowered := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, strings.ToLower(name))

	var b strings.Builder
	for i := 0; i < len(lowered); i++ {
		c := lowered[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

// Normalize returns the case-insensitive lookup form of a name
func Normalize(name string) string {
	return strings.ToLower(name)
}

// childID builds a nested section id from its parent reference
func childID(parent, id string) string {
	return Slug(strings.ReplaceAll(parent, ".", " ")) + "-" + id
}

const hexDigits = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
