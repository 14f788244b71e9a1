package styleguide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Buttons", "buttons"},
		{"Primary Buttons", "primary-buttons"},
		{"Tabs\tand  Pills", "tabs-and--pills"},
		{"a/b?", "a%2Fb%3F"},
		{"Größe", "gr%C3%B6%C3%9Fe"},
		{"it's (new)!", "it's-(new)!"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.name))
		})
	}
}

func TestChildID(t *testing.T) {
	assert.Equal(t, "foo-bar", childID("Foo", "bar"))
	assert.Equal(t, "foo-bar-baz", childID("Foo.Bar", "baz"))
	assert.Equal(t, "big-foo-bar", childID("Big Foo", "bar"))
}

func TestError(t *testing.T) {
	err := syntaxError("a.css", &Tag{Line: 2}, "unnamed section")
	assert.Equal(t, "syntax error: unnamed section (a.css:3)", err.Error())
	assert.ErrorIs(t, err, ErrSyntax)
	assert.NotErrorIs(t, err, ErrReference)

	err = referenceError("", nil, "cannot alias @%s", "x")
	assert.Equal(t, "reference error: cannot alias @x", err.Error())
	assert.Equal(t, 0, err.Line)
	assert.ErrorIs(t, err, ErrReference)
}

func TestBlock_Set(t *testing.T) {
	b := &Block{}
	b.Set("a", "1")
	v, _ := b.Get("a")
	assert.Equal(t, "1", v)

	b.Set("a", true)
	b.Set("a", "3")
	v, _ = b.Get("a")
	assert.Equal(t, []any{"1", true, "3"}, v)
}

func TestBlock_Clone(t *testing.T) {
	child := &Block{Name: "Primary", Parents: []string{"Buttons"}, Example: &Snippet{Description: "<b>", Type: "markup"}}
	root := &Block{Name: "Buttons", Children: []*Block{child}}
	child.parent = root
	child.Set("state", &Property{Name: "hover"})
	child.Set("tag", "a")
	child.Set("tag", &Property{Type: "x"})

	cp := root.Clone()
	require.Len(t, cp.Children, 1)
	cc := cp.Children[0]

	assert.Equal(t, child.Name, cc.Name)
	assert.NotSame(t, child, cc)
	assert.NotSame(t, child.Example, cc.Example)
	assert.Same(t, cp, cc.parent)

	cc.Parents[0] = "Other"
	cc.Example.Description = "<i>"
	cc.Props["state"].(*Property).Name = "focus"
	cc.Props["tag"].([]any)[1].(*Property).Type = "y"

	assert.Equal(t, "Buttons", child.Parents[0])
	assert.Equal(t, "<b>", child.Example.Description)
	v, _ := child.Get("state")
	assert.Equal(t, "hover", v.(*Property).Name)
	v, _ = child.Get("tag")
	assert.Equal(t, "x", v.([]any)[1].(*Property).Type)

	assert.Nil(t, (*Block)(nil).Clone())
}
