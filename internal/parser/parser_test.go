package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParser(t *testing.T) {
	p := NewParser()
	assert.NotNil(t, p)
	assert.NotNil(t, p.cssParser)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected Language
	}{
		{"buttons.css", LanguageCSS},
		{"buttons.scss", LanguageSCSS},
		{"buttons.sass", LanguageSass},
		{"buttons.less", LanguageLess},
		{"buttons.styl", LanguageStylus},
		{"README.md", LanguageUnknown},
		{"/path/to/file.CSS", LanguageCSS},
		{"Makefile", LanguageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.path))
		})
	}
}

func TestParser_ParseContent_CSS(t *testing.T) {
	p := NewParser()
	content := `/* plain comment, ignored */
.btn { color: red; }

/**
 * Buttons
 *
 * Description.
 * @section
 */
.btn-primary { color: blue; }
`
	comments, err := p.ParseContent(context.Background(), "buttons.css", content)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	c := comments[0]
	assert.Equal(t, 3, c.Line)
	assert.Equal(t, "Buttons\n\nDescription.", c.Description)
	require.Len(t, c.Tags, 1)
	assert.Equal(t, "section", c.Tags[0].Tag)
	assert.Equal(t, 7, c.Tags[0].Line)
}

func TestParser_ParseContent_MultipleComments(t *testing.T) {
	p := NewParser()
	content := `/** @section Foo */
.foo {}
/**
 * @section Bar
 * @sectionof Foo
 */
.bar {}
`
	comments, err := p.ParseContent(context.Background(), "test.css", content)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	assert.Equal(t, "Foo", comments[0].Tags[0].Description)
	assert.Equal(t, 0, comments[0].Tags[0].Line)

	require.Len(t, comments[1].Tags, 2)
	assert.Equal(t, "sectionof", comments[1].Tags[1].Tag)
	assert.Equal(t, "Foo", comments[1].Tags[1].Description)
	assert.Equal(t, 4, comments[1].Tags[1].Line)
}

func TestParser_ParseContent_SCSS(t *testing.T) {
	p := NewParser()
	content := `// a line comment with /** inside
$url: "/** not a comment */";
/**
 * @section Colors
 */
.colors { background: url(//cdn.example.com/a.png); }
/** @section Sizes */
`
	comments, err := p.ParseContent(context.Background(), "vars.scss", content)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Colors", comments[0].Tags[0].Description)
	assert.Equal(t, 2, comments[0].Line)
	assert.Equal(t, "Sizes", comments[1].Tags[0].Description)
	assert.Equal(t, 6, comments[1].Line)
}

func TestParser_ParseFile_Missing(t *testing.T) {
	p := NewParser()
	_, err := p.ParseFile(context.Background(), "/does/not/exist.css")
	assert.Error(t, err)
}

func TestScanComments(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		lineCmts bool
		expected []RawComment
	}{
		{
			name:     "empty",
			content:  "",
			expected: []RawComment{},
		},
		{
			name:     "skips plain and empty comments",
			content:  "/* a */\n/**/\n/*** banner ***/\n/** doc */",
			expected: []RawComment{{Text: "/** doc */", Line: 3}},
		},
		{
			name:     "unterminated comment",
			content:  "/** doc",
			expected: []RawComment{},
		},
		{
			name:     "string containing comment",
			content:  "a { content: '/** x */'; }\n/** y */",
			expected: []RawComment{{Text: "/** y */", Line: 1}},
		},
		{
			name:     "line comments only when enabled",
			content:  "// /** x */\n/** y */",
			lineCmts: true,
			expected: []RawComment{{Text: "/** y */", Line: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ScanComments(tt.content, tt.lineCmts))
		})
	}
}
