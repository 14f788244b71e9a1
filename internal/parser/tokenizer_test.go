package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_DescriptionAndTags(t *testing.T) {
	raw := `/**
 * Buttons
 *
 * Description of buttons.
 *
 * @section
 * @tagName tagValue
 */`
	c := Tokenize(raw, 10)

	assert.Equal(t, "Buttons\n\nDescription of buttons.", c.Description)
	assert.Equal(t, 10, c.Line)
	require.Len(t, c.Tags, 2)

	assert.Equal(t, Tag{Tag: "section", Line: 15}, c.Tags[0])
	assert.Equal(t, Tag{Tag: "tagName", Description: "tagValue", Line: 16}, c.Tags[1])
}

func TestTokenize_SingleLine(t *testing.T) {
	c := Tokenize("/** @section Foo */", 0)
	require.Len(t, c.Tags, 1)
	assert.Equal(t, "Foo", c.Tags[0].Description)
	assert.Empty(t, c.Description)
}

func TestTokenize_NameOnlyWithHyphen(t *testing.T) {
	raw := `/**
 * @state {type} :hover - hover state
 * @state :disabled - disabled state
 * @state .primary-description
 * @state .secondary -description
 * @state {type} description
 * @state description with some text and no name
 * @state .party some text which then needs a hyphen - to separate content
 * @state en – dash
 * @state em — dash
 */`
	c := Tokenize(raw, 0)
	require.Len(t, c.Tags, 9)

	tests := []struct {
		name        string
		typ         string
		description string
	}{
		{":hover", "type", "hover state"},
		{":disabled", "", "disabled state"},
		{"", "", ".primary-description"},
		{"", "", ".secondary -description"},
		{"", "type", "description"},
		{"", "", "description with some text and no name"},
		{".party some text which then needs a hyphen", "", "to separate content"},
		{"en", "", "dash"},
		{"em", "", "dash"},
	}

	for i, tt := range tests {
		tag := c.Tags[i]
		assert.Equal(t, tt.name, tag.Name, "tag %d name", i)
		assert.Equal(t, tt.typ, tag.Type, "tag %d type", i)
		assert.Equal(t, tt.description, tag.Description, "tag %d description", i)
	}
}

func TestTokenize_NoHyphenMeansNoName(t *testing.T) {
	bodies := []string{
		"plain description",
		"a-b-c",
		"trailing -",
		"- leading dash",
		".btn--large",
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			c := Tokenize("/**\n * @tag "+body+"\n */", 0)
			require.Len(t, c.Tags, 1)
			assert.Empty(t, c.Tags[0].Name)
			assert.Equal(t, body, c.Tags[0].Description)
		})
	}
}

func TestTokenize_MultiLineBodyPreservesFormatting(t *testing.T) {
	raw := `/**
 * @example {javascript}
 *
 * if (a) {
 *   console.log('a - b');
 * }
 *
 * @hideCode
 */`
	c := Tokenize(raw, 0)
	require.Len(t, c.Tags, 2)

	ex := c.Tags[0]
	assert.Equal(t, "example", ex.Tag)
	assert.Equal(t, "javascript", ex.Type)
	assert.Empty(t, ex.Name)
	assert.Equal(t, "if (a) {\n  console.log('a - b');\n}", ex.Description)

	assert.Equal(t, "hideCode", c.Tags[1].Tag)
	assert.Empty(t, c.Tags[1].Description)
}

func TestTokenize_NestedBracesInType(t *testing.T) {
	c := Tokenize("/** @param {{a: number}} value */", 0)
	require.Len(t, c.Tags, 1)
	assert.Equal(t, "{a: number}", c.Tags[0].Type)
	assert.Equal(t, "value", c.Tags[0].Description)
}

func TestTokenize_NotATag(t *testing.T) {
	c := Tokenize("/**\n * email me @ home\n * @1x image\n */", 0)
	assert.Empty(t, c.Tags)
	assert.Equal(t, "email me @ home\n@1x image", c.Description)
}

func TestTokenize_UnicodeTagName(t *testing.T) {
	c := Tokenize("/**\n * @sección Botones\n */", 0)
	require.Len(t, c.Tags, 1)
	assert.Equal(t, "sección", c.Tags[0].Tag)
	assert.Equal(t, "Botones", c.Tags[0].Description)
}

func TestParseTagLine(t *testing.T) {
	tag, ok := ParseTagLine("@example {css}\n@media print {\n  a { color: black; }\n}", 7)
	require.True(t, ok)
	assert.Equal(t, "example", tag.Tag)
	assert.Equal(t, "css", tag.Type)
	assert.Equal(t, 7, tag.Line)
	assert.Equal(t, "@media print {\n  a { color: black; }\n}", tag.Description)

	_, ok = ParseTagLine("not a tag", 0)
	assert.False(t, ok)
}

func TestComment_Find(t *testing.T) {
	c := Tokenize("/**\n * @section A\n * @sectionof B\n * @sectionof C\n */", 0)

	require.NotNil(t, c.Find("sectionof"))
	assert.Equal(t, "B", c.Find("sectionof").Description)
	assert.Nil(t, c.Find("page"))
	assert.Len(t, c.FindAll("sectionof"), 2)
}
