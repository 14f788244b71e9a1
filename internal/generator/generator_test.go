package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QTest-hq/livingstyle/internal/config"
	"github.com/QTest-hq/livingstyle/internal/render"
	"github.com/QTest-hq/livingstyle/internal/styleguide"
)

const buttonsCSS = `/**
 * Buttons
 *
 * Clickable things.
 * @section
 */
.btn { padding: 4px; }

/**
 * @section Primary
 * @sectionof Buttons
 * @example
 * <button class="btn btn-primary">Go</button>
 */
.btn-primary { color: white; }
`

const formsSCSS = `/**
 * @section Inputs
 * @sectionof Forms
 * @ejemplo <input class="input">
 */
.input { border: 1px solid; }

/**
 * @section Forms
 * @page Components
 */
`

const colorsLess = `/**
 * @section Colors
 * @page Components
 * @swatch {#f00} red - Primary red
 */
`

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"styles/buttons.css": buttonsCSS,
		"styles/forms.scss":  formsSCSS,
		"styles/colors.less": colorsLess,
		"styles/ignored.txt": "/** @section Nope */",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func testOptions(dir string) Options {
	opts := OptionsFromConfig(config.DefaultProjectConfig())
	opts.Source = []string{
		filepath.ToSlash(dir) + "/styles/*.css",
		filepath.ToSlash(dir) + "/styles/*.{scss,less}",
	}
	opts.Dest = filepath.Join(dir, "out")
	opts.Revision = false
	opts.Aliases = map[string]string{"ejemplo": "example"}
	opts.Concurrency = 2
	return opts
}

func TestParse(t *testing.T) {
	dir := writeProject(t)
	g := NewGenerator()

	tree, err := g.Parse(context.Background(), testOptions(dir))
	require.NoError(t, err)

	assert.NotEmpty(t, tree.RunID)
	require.Len(t, tree.Files, 3)
	assert.Equal(t, "buttons.css", filepath.Base(tree.Files[0]))

	require.Len(t, tree.Pages, 2)
	assert.Equal(t, "index", tree.Pages[0].Name)
	assert.Equal(t, "Components", tree.Pages[1].Name)

	require.Len(t, tree.Sections, 3)
	assert.Len(t, tree.All(), 5)

	forms, ok := tree.Section("forms")
	require.True(t, ok)
	require.Len(t, forms.Children, 1)
	inputs := forms.Children[0]
	assert.Equal(t, "forms-inputs", inputs.ID)
	assert.Equal(t, 2, inputs.Depth)
	require.NotNil(t, inputs.Example)
	assert.Equal(t, `<input class="input">`, inputs.Example.Description)

	colors, ok := tree.Section("colors")
	require.True(t, ok)
	swatch, ok := colors.Get("swatch")
	require.True(t, ok)
	assert.Equal(t, &styleguide.Property{Name: "red", Type: "#f00", Description: "Primary red"}, swatch)

	_, ok = tree.Section("nope")
	assert.False(t, ok)
}

func TestParse_SortOrder(t *testing.T) {
	dir := writeProject(t)
	opts := testOptions(dir)
	opts.SortOrder = config.SortOrder{
		{Page: "components", Sections: []string{"forms", "colors"}},
		{Page: "index"},
	}

	tree, err := NewGenerator().Parse(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, tree.Pages, 2)
	assert.Equal(t, "Components", tree.Pages[0].Name)
	assert.Equal(t, "Forms", tree.Pages[0].Sections[0].Name)
	assert.Equal(t, "Colors", tree.Pages[0].Sections[1].Name)
}

func TestParse_UnresolvedParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.css")
	require.NoError(t, os.WriteFile(path, []byte("/**\n * @section Child\n * @sectionof Missing\n */\n"), 0644))

	_, err := NewGenerator().Parse(context.Background(), Options{Source: []string{path}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, styleguide.ErrReference))
	assert.Contains(t, err.Error(), "section 'Missing' is not defined")
}

func TestParse_UnknownAlias(t *testing.T) {
	_, err := NewGenerator().Parse(context.Background(), Options{
		Aliases: map[string]string{"x": "missing"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, styleguide.ErrReference))
}

func TestParse_CustomHandler(t *testing.T) {
	dir := writeProject(t)
	opts := testOptions(dir)
	opts.Handlers = map[string]styleguide.Handler{
		"swatch": func(tc *styleguide.TagContext) error {
			tc.Block.Set("color", tc.Tag.Type)
			return nil
		},
	}

	tree, err := NewGenerator().Parse(context.Background(), opts)
	require.NoError(t, err)

	colors, _ := tree.Section("colors")
	v, ok := colors.Get("color")
	require.True(t, ok)
	assert.Equal(t, "#f00", v)
}

func TestParse_NilHandler(t *testing.T) {
	_, err := NewGenerator().Parse(context.Background(), Options{
		Handlers: map[string]styleguide.Handler{"bad": nil},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, styleguide.ErrSyntax))
}

func TestGenerate(t *testing.T) {
	dir := writeProject(t)
	opts := testOptions(dir)
	opts.Title = "Acme"
	opts.Preprocess = func(pc *render.PageContext) error {
		pc.Title = pc.Title + " / " + pc.Page.Name
		return nil
	}

	result, err := NewGenerator().Generate(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(opts.Dest, "index.html"),
		filepath.Join(opts.Dest, "components.html"),
	}, result.Written)
	assert.Empty(t, result.Revision)

	data, err := os.ReadFile(result.Written[0])
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	require.NoError(t, err)

	assert.Equal(t, "Acme / index - index", doc.Find("title").Text())
	assert.Equal(t, "../styles/buttons.css", doc.Find(`link[rel="stylesheet"]`).AttrOr("href", ""))
	assert.Equal(t, 2, doc.Find(".lsg-navbar li").Length())
	assert.Equal(t, 1, doc.Find("section#buttons section#buttons-primary").Length())
	assert.Equal(t, 1, doc.Find(".lsg-example button.btn-primary").Length())
}

func TestGenerate_NoCSSLinks(t *testing.T) {
	dir := writeProject(t)
	opts := testOptions(dir)
	opts.LoadCSS = false
	opts.Minify = true

	result, err := NewGenerator().Generate(context.Background(), opts)
	require.NoError(t, err)

	data, err := os.ReadFile(result.Written[1])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "buttons.css")
	assert.Contains(t, string(data), "Colors")
}

func TestGenerate_MissingTemplate(t *testing.T) {
	dir := writeProject(t)
	opts := testOptions(dir)
	opts.Template = filepath.Join(dir, "missing.tmpl")

	_, err := NewGenerator().Generate(context.Background(), opts)
	require.Error(t, err)
	_, statErr := os.Stat(opts.Dest)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLinkedStylesheets(t *testing.T) {
	links, err := linkedStylesheets("/site/out", []string{"/site/css/a.css", "/site/b.scss", "/site/out/c.css"})
	require.NoError(t, err)
	assert.Equal(t, []string{"../css/a.css", "c.css"}, links)
}

func TestGenerate_Manifest(t *testing.T) {
	dir := writeProject(t)
	opts := testOptions(dir)
	opts.Manifest = true

	result, err := NewGenerator().Generate(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.Dest, ManifestFile), result.Manifest)

	m, err := LoadManifest(opts.Dest)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, m.RunID)
	assert.Equal(t, 3, m.Summary.Files)
	assert.Equal(t, 5, m.Summary.Sections)
	assert.Equal(t, map[string]int{"index": 2, "components": 3}, m.Summary.ByPage)

	require.Len(t, m.Pages, 2)
	assert.Equal(t, "components.html", m.Pages[1].File)
	ids := make([]string, 0)
	for _, s := range m.Pages[1].Sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"colors", "forms", "forms-inputs"}, ids)
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(t.TempDir())
	assert.True(t, os.IsNotExist(err))
}
