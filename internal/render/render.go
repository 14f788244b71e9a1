// Package render turns the page tree into HTML files.
package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	mhtml "github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
	"golang.org/x/sync/errgroup"

	"github.com/QTest-hq/livingstyle/internal/styleguide"
)

//go:embed templates/default.html.tmpl
var defaultTemplate string

// DefaultStyle is the chroma style used for code snippets
const DefaultStyle = "github"

var svgDataRegex = regexp.MustCompile(`(?i)url\("data:image/svg\+xml;.*?"\)`)

// Options configures a Renderer
type Options struct {
	// Template is a path to an html/template file. Empty uses the built-in one.
	Template string
	Minify   bool
	// Preprocess runs on every page context before it is rendered. An error
	// aborts the run.
	Preprocess  func(pc *PageContext) error
	Style       string
	Concurrency int
}

// Renderer executes the page template
type Renderer struct {
	tmpl      *template.Template
	minifier  *minify.M
	formatter *chromahtml.Formatter
	style     *chroma.Style
	opts      Options
}

// New parses the template and prepares the highlighter and minifier
func New(opts Options) (*Renderer, error) {
	src := defaultTemplate
	name := "default"
	if opts.Template != "" {
		data, err := os.ReadFile(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		src = string(data)
		name = filepath.Base(opts.Template)
	}

	style := styles.Get(opts.Style)
	if opts.Style == "" {
		style = styles.Get(DefaultStyle)
	}
	if style == nil {
		style = styles.Fallback
	}

	r := &Renderer{
		formatter: chromahtml.New(chromahtml.TabWidth(2)),
		style:     style,
		opts:      opts,
	}

	tmpl, err := template.New(name).Funcs(r.funcs()).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	r.tmpl = tmpl

	if opts.Minify {
		m := minify.New()
		m.AddFunc("text/html", mhtml.Minify)
		m.AddFunc("text/css", css.Minify)
		m.AddFunc("image/svg+xml", svg.Minify)
		m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
		r.minifier = m
	}

	return r, nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"safe":      safe,
		"heading":   heading,
		"example":   example,
		"highlight": r.highlight,
	}
}

// Render executes the template for one page
func (r *Renderer) Render(pc *PageContext) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, pc); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	if r.minifier == nil {
		return buf.Bytes(), nil
	}

	out, err := r.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to minify: %w", err)
	}
	return out, nil
}

// WriteAll renders every page of site to <dest>/<page id>.html and returns
// the written paths in page order
func (r *Renderer) WriteAll(ctx context.Context, dest string, site *Site) ([]string, error) {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	contexts := site.PageContexts()
	paths := make([]string, len(contexts))

	// hooks may touch shared state, so they run in page order first
	if r.opts.Preprocess != nil {
		for _, pc := range contexts {
			if err := r.opts.Preprocess(pc); err != nil {
				return nil, fmt.Errorf("preprocess %s: %w", pc.Page.Name, err)
			}
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	if r.opts.Concurrency > 0 {
		g.SetLimit(r.opts.Concurrency)
	}

	for i, pc := range contexts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			html, err := r.Render(pc)
			if err != nil {
				return fmt.Errorf("page %s: %w", pc.Page.Name, err)
			}

			path := filepath.Join(dest, pc.Page.ID+".html")
			if err := os.WriteFile(path, html, 0644); err != nil {
				return fmt.Errorf("failed to write page: %w", err)
			}

			log.Debug().
				Str("page", pc.Page.Name).
				Str("path", path).
				Int("bytes", len(html)).
				Msg("wrote page")

			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// highlight renders a code snippet with chroma. "markup" snippets are
// highlighted as HTML.
func (r *Renderer) highlight(s *styleguide.Snippet) (template.HTML, error) {
	if s == nil {
		return "", nil
	}

	it, err := lexerFor(s.Type).Tokenise(nil, s.Description)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s snippet: %w", s.Type, err)
	}

	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, it); err != nil {
		return "", fmt.Errorf("failed to highlight: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func lexerFor(typ string) chroma.Lexer {
	name := strings.ToLower(strings.TrimSpace(typ))
	if name == "" || name == "markup" {
		name = "html"
	}

	lexer := lexers.Get(name)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// example returns snippet markup for live rendering
func example(s *styleguide.Snippet) template.HTML {
	if s == nil {
		return ""
	}
	return template.HTML(FixSVGQuotes(s.Description))
}

// heading renders the section title at its depth
func heading(depth int, name string) template.HTML {
	depth = min(max(depth, 1), styleguide.MaxDepth)
	return template.HTML(fmt.Sprintf(`<h%d class="lsg-section-title">%s</h%d>`, depth, template.HTMLEscapeString(name), depth))
}

// safe marks already rendered HTML, such as markdown output or configured
// footer markup
func safe(s string) template.HTML {
	return template.HTML(s)
}

// FixSVGQuotes percent-encodes single quotes inside inline SVG data URIs,
// which otherwise end the surrounding attribute in some browsers
func FixSVGQuotes(s string) string {
	return svgDataRegex.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ReplaceAll(m, "'", "%27")
	})
}
