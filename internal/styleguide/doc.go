package styleguide

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/QTest-hq/livingstyle/internal/parser"
)

var (
	atxHeadingRegex      = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)
	setextUnderlineRegex = regexp.MustCompile(`^ {0,3}(?:=+|-+)[ \t]*$`)
	snippetTagRegex      = regexp.MustCompile(`^@(?:example|code)\b`)
)

// docHandler handles @doc <file>. The markdown file is folded into the
// comment: code blocks that start with @example or @code become tags, the
// first heading names the section when @section did not, and everything
// else is appended to the comment description.
func docHandler(tc *TagContext) error {
	ref := strings.TrimSpace(tc.Tag.Description)
	if ref == "" {
		return referenceError(tc.File, tc.Tag, "@doc must reference a file")
	}

	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(tc.File), ref)
	}
	data, err := tc.State.ReadFile(path)
	if err != nil {
		return referenceError(tc.File, tc.Tag, "file not found '%s'", path)
	}

	comment := tc.Comment
	var desc strings.Builder
	headingSeen := false

	for _, seg := range scanDoc(string(data)) {
		switch seg.kind {
		case segmentCode:
			body := strings.TrimLeft(seg.text, " \t\r\n")
			if snippetTagRegex.MatchString(body) {
				if tag, ok := parser.ParseTagLine(body, tc.Tag.Line); ok {
					comment.Tags = append(comment.Tags, tag)
					continue
				}
			}
		case segmentHeading:
			if headingSeen {
				break
			}
			headingSeen = true
			if i := tagIndex(comment, "section"); i >= 0 && seg.text != "" && strings.TrimSpace(comment.Tags[i].Description) == "" {
				comment.Tags[i].Description = seg.text
				continue
			}
		}
		desc.WriteString(seg.raw)
	}

	text := strings.TrimLeft(strings.TrimRightFunc(desc.String(), unicode.IsSpace), "\r\n")
	switch {
	case text == "":
	case comment.Description == "":
		comment.Description = text
	default:
		comment.Description += "\n\n" + text
	}
	return nil
}

func tagIndex(comment *Comment, name string) int {
	for i := range comment.Tags {
		if comment.Tags[i].Tag == name {
			return i
		}
	}
	return -1
}

type segmentKind int

const (
	segmentText segmentKind = iota
	segmentCode
	segmentHeading
)

// docSegment is a run of source lines. raw is the verbatim source including
// the trailing newline; text is the code body or the heading text.
type docSegment struct {
	kind segmentKind
	raw  string
	text string
}

// docScanner walks markdown source line by line. Code blocks are recognized
// before headings so a "# comment" inside a fence stays code.
type docScanner struct {
	src       string
	pos       int
	prevBlank bool
}

func scanDoc(src string) []docSegment {
	s := &docScanner{
		src:       strings.ReplaceAll(src, "\r\n", "\n"),
		prevBlank: true,
	}

	segments := make([]docSegment, 0)
	for !s.done() {
		segments = append(segments, s.segment())
	}
	return segments
}

func (s *docScanner) done() bool {
	return s.pos >= len(s.src)
}

// peekAt returns the line starting at offset and the offset after it
func (s *docScanner) peekAt(offset int) (string, int) {
	if offset >= len(s.src) {
		return "", offset
	}
	end := strings.IndexByte(s.src[offset:], '\n')
	if end < 0 {
		return s.src[offset:], len(s.src)
	}
	return s.src[offset : offset+end], offset + end + 1
}

func (s *docScanner) segment() docSegment {
	start := s.pos
	line, next := s.peekAt(s.pos)

	if char, width, ok := fenceOpen(line); ok {
		body := s.fenced(next, char, width)
		s.prevBlank = true
		return docSegment{kind: segmentCode, raw: s.src[start:s.pos], text: body}
	}

	if s.prevBlank && isIndentedCode(line) && strings.TrimSpace(line) != "" {
		body := s.indented()
		s.prevBlank = true
		return docSegment{kind: segmentCode, raw: s.src[start:s.pos], text: body}
	}

	if m := atxHeadingRegex.FindStringSubmatch(line); m != nil {
		s.pos = next
		s.prevBlank = true
		return docSegment{kind: segmentHeading, raw: s.src[start:s.pos], text: strings.TrimSpace(m[2])}
	}

	if strings.TrimSpace(line) != "" && !isIndentedCode(line) {
		underline, after := s.peekAt(next)
		if next < len(s.src) && setextUnderlineRegex.MatchString(underline) {
			s.pos = after
			s.prevBlank = true
			return docSegment{kind: segmentHeading, raw: s.src[start:s.pos], text: strings.TrimSpace(line)}
		}
	}

	s.pos = next
	s.prevBlank = strings.TrimSpace(line) == ""
	return docSegment{kind: segmentText, raw: s.src[start:s.pos]}
}

// fenced consumes a fenced block whose opening line ends at bodyStart and
// returns the lines between the fences. An unclosed fence runs to the end.
func (s *docScanner) fenced(bodyStart int, char byte, width int) string {
	var body []string
	pos := bodyStart
	for pos < len(s.src) {
		line, next := s.peekAt(pos)
		pos = next
		if fenceClose(line, char, width) {
			break
		}
		body = append(body, line)
	}
	s.pos = pos
	return strings.Join(body, "\n")
}

// indented consumes an indented code block. Trailing blank lines are left
// for the next segment.
func (s *docScanner) indented() string {
	var body []string
	pos, end, kept := s.pos, s.pos, 0
	for pos < len(s.src) {
		line, next := s.peekAt(pos)
		blank := strings.TrimSpace(line) == ""
		if !blank && !isIndentedCode(line) {
			break
		}
		body = append(body, dedent(line))
		pos = next
		if !blank {
			end, kept = pos, len(body)
		}
	}
	s.pos = end
	return strings.Join(body[:kept], "\n")
}

func fenceOpen(line string) (byte, int, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return 0, 0, false
	}
	char := trimmed[0]
	if char != '`' && char != '~' {
		return 0, 0, false
	}
	width := 0
	for width < len(trimmed) && trimmed[width] == char {
		width++
	}
	if width < 3 {
		return 0, 0, false
	}
	// backtick fences cannot have backticks in the info string
	if char == '`' && strings.ContainsRune(trimmed[width:], '`') {
		return 0, 0, false
	}
	return char, width, true
}

func fenceClose(line string, char byte, width int) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == char {
		n++
	}
	return n >= width && strings.TrimSpace(trimmed[n:]) == ""
}

func isIndentedCode(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func dedent(line string) string {
	if strings.HasPrefix(line, "\t") {
		return line[1:]
	}
	return strings.TrimPrefix(line, "    ")
}
