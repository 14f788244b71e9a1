package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"empty", "", ""},
		{"paragraph", "Description.", "<p>Description.</p>"},
		{"inline", "*Will* be parsed as `markdown`.", "<p><em>Will</em> be parsed as <code>markdown</code>.</p>"},
		{"heading id", "### Header\n\nparagraph", "<h3 id=\"header\">Header</h3>\n<p>paragraph</p>"},
		{"raw html", "<div class=\"swatch\"></div>", "<div class=\"swatch\"></div>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := r.Render(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, html)
		})
	}
}

func TestRenderer_Func(t *testing.T) {
	fn := NewRenderer().Func()
	html, err := fn("**bold**")
	require.NoError(t, err)
	assert.Equal(t, "<p><strong>bold</strong></p>", html)
}
