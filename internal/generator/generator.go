// Package generator runs a full style guide build: discover sources, read
// them, parse their comments into one tree, order it and render the pages.
package generator

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/livingstyle/internal/config"
	"github.com/QTest-hq/livingstyle/internal/parser"
	"github.com/QTest-hq/livingstyle/internal/render"
	"github.com/QTest-hq/livingstyle/internal/source"
	"github.com/QTest-hq/livingstyle/internal/styleguide"
	"github.com/QTest-hq/livingstyle/internal/vcs"
)

// Options holds everything a run needs
type Options struct {
	Source   []string
	Dest     string
	Template string
	Minify   bool
	LoadCSS  bool
	Revision bool
	Manifest bool

	Title          string
	FooterHTML     string
	MenuButtonHTML string
	Stylesheets    []string
	Scripts        []string
	HighlightStyle string

	SortOrder config.SortOrder

	// Aliases maps a custom tag name to the tag whose handler it uses
	Aliases map[string]string
	// Handlers adds or replaces tag handlers
	Handlers map[string]styleguide.Handler
	// Preprocess runs on every page context before rendering
	Preprocess func(pc *render.PageContext) error

	Concurrency int
}

// OptionsFromConfig maps a project config onto run options
func OptionsFromConfig(cfg *config.ProjectConfig) Options {
	return Options{
		Source:         cfg.Source,
		Dest:           cfg.Dest,
		Template:       cfg.Template,
		Minify:         cfg.Minify,
		LoadCSS:        cfg.LoadCSS,
		Revision:       cfg.Revision,
		Manifest:       cfg.Manifest,
		Title:          cfg.Title,
		FooterHTML:     cfg.FooterHTML,
		MenuButtonHTML: cfg.MenuButtonHTML,
		Stylesheets:    cfg.Stylesheets,
		Scripts:        cfg.Scripts,
		HighlightStyle: cfg.HighlightStyle,
		SortOrder:      cfg.SortOrder,
		Aliases:        cfg.Tags,
	}
}

// Tree is the parsed, ordered style guide
type Tree struct {
	RunID    string              `json:"runId"`
	Files    []string            `json:"files"`
	Pages    []*styleguide.Page  `json:"pages"`
	Sections []*styleguide.Block `json:"sections"`

	all []*styleguide.Block
}

// Section finds a section by id
func (t *Tree) Section(id string) (*styleguide.Block, bool) {
	for _, s := range t.all {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// All returns every section in encounter order
func (t *Tree) All() []*styleguide.Block {
	return t.all
}

// Result describes a finished run
type Result struct {
	*Tree
	Written  []string      `json:"written"`
	Revision string        `json:"revision,omitempty"`
	Manifest string        `json:"manifest,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Generator builds style guides. One Generator can serve concurrent runs;
// every run gets its own parsing context.
type Generator struct {
	parser *parser.Parser
}

// NewGenerator creates a new generator
func NewGenerator() *Generator {
	return &Generator{
		parser: parser.NewParser(),
	}
}

// Parse discovers and parses the sources into an ordered tree without
// rendering anything
func (g *Generator) Parse(ctx context.Context, opts Options) (*Tree, error) {
	runID := uuid.New().String()

	handlers, err := buildHandlers(opts)
	if err != nil {
		return nil, err
	}

	files, err := source.Load(ctx, opts.Source, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	state := styleguide.NewContext(styleguide.WithParser(g.parser))

	// reads fan out above; parsing stays sequential in source order
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if err := state.ParseComments(ctx, f.Content, f.Path, handlers, nil); err != nil {
			return nil, err
		}
		paths = append(paths, f.Path)
	}

	if err := state.Resolve(); err != nil {
		return nil, err
	}

	sortOrder(opts.SortOrder).Apply(state)

	tree := &Tree{
		RunID:    runID,
		Files:    paths,
		Pages:    state.Pages.All(),
		Sections: state.Sections.Roots(),
		all:      state.Sections.All(),
	}

	log.Info().
		Str("run_id", runID).
		Int("files", len(paths)).
		Int("sections", state.Sections.Len()).
		Int("pages", state.Pages.Len()).
		Msg("parsed style guide")

	return tree, nil
}

// Generate parses the sources and writes one HTML file per page to
// opts.Dest
func (g *Generator) Generate(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	tree, err := g.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(render.Options{
		Template:    opts.Template,
		Minify:      opts.Minify,
		Preprocess:  opts.Preprocess,
		Style:       opts.HighlightStyle,
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return nil, err
	}

	site := &render.Site{
		Title:             opts.Title,
		FooterHTML:        opts.FooterHTML,
		MenuButtonHTML:    opts.MenuButtonHTML,
		Pages:             tree.Pages,
		AllSections:       tree.all,
		GlobalStylesheets: opts.Stylesheets,
		Scripts:           opts.Scripts,
		RunID:             tree.RunID,
	}

	if opts.LoadCSS {
		site.Stylesheets, err = linkedStylesheets(opts.Dest, tree.Files)
		if err != nil {
			return nil, err
		}
	}

	if opts.Revision {
		site.Revision = revision(tree.Files)
	}

	written, err := renderer.WriteAll(ctx, opts.Dest, site)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Tree:     tree,
		Written:  written,
		Revision: site.Revision,
	}

	if opts.Manifest {
		result.Manifest, err = NewManifest(tree, site.Revision).Save(opts.Dest)
		if err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)

	log.Info().
		Str("run_id", tree.RunID).
		Str("dest", opts.Dest).
		Int("pages", len(written)).
		Dur("duration", result.Duration).
		Msg("generated style guide")

	return result, nil
}

// buildHandlers layers custom handlers and then aliases over the defaults,
// so an alias may point at a custom handler
func buildHandlers(opts Options) (*styleguide.Handlers, error) {
	handlers := styleguide.DefaultHandlers()

	for _, name := range slices.Sorted(maps.Keys(opts.Handlers)) {
		if err := handlers.Register(name, opts.Handlers[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(opts.Aliases)) {
		if err := handlers.Alias(name, opts.Aliases[name]); err != nil {
			return nil, err
		}
	}

	return handlers, nil
}

func sortOrder(entries config.SortOrder) *styleguide.SortOrder {
	order := styleguide.NewSortOrder()
	for _, e := range entries {
		order.AddPage(e.Page)
		if len(e.Sections) > 0 {
			order.AddSections(e.Page, e.Sections...)
		}
	}
	return order
}

// linkedStylesheets returns the .css sources as paths relative to dest
func linkedStylesheets(dest string, files []string) ([]string, error) {
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dest, err)
	}

	links := make([]string, 0)
	for _, f := range files {
		if filepath.Ext(f) != ".css" {
			continue
		}
		absFile, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		rel, err := filepath.Rel(absDest, absFile)
		if err != nil {
			return nil, fmt.Errorf("failed to link %s: %w", f, err)
		}
		links = append(links, filepath.ToSlash(rel))
	}
	return links, nil
}

// revision stamps the commit of the first source file. Failures only cost
// the stamp.
func revision(files []string) string {
	dir := "."
	if len(files) > 0 {
		dir = filepath.Dir(files[0])
	}

	rev, err := vcs.Lookup(dir)
	if err != nil {
		log.Warn().Err(err).Str("path", dir).Msg("failed to resolve revision")
		return ""
	}
	return rev.Short()
}
