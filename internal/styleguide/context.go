package styleguide

import (
	"os"

	"github.com/QTest-hq/livingstyle/internal/markdown"
	"github.com/QTest-hq/livingstyle/internal/parser"
)

// MarkdownFunc renders markdown source to HTML
type MarkdownFunc func(src string) (string, error)

// ReadFileFunc loads a file referenced by @example, @code or @doc
type ReadFileFunc func(path string) ([]byte, error)

// Context is the state of one generation run, shared by every file parsed
// in it. A Context must not be used from more than one goroutine at a time;
// independent runs use independent contexts.
type Context struct {
	Sections *SectionRegistry
	Pages    *PageRegistry

	markdown MarkdownFunc
	readFile ReadFileFunc
	parser   *parser.Parser
	pending  *forwardRefs
}

// Option configures a Context
type Option func(*Context)

// WithMarkdown swaps the markdown renderer
func WithMarkdown(fn MarkdownFunc) Option {
	return func(c *Context) {
		c.markdown = fn
	}
}

// WithReadFile swaps how referenced files are loaded
func WithReadFile(fn ReadFileFunc) Option {
	return func(c *Context) {
		c.readFile = fn
	}
}

// WithParser shares a comment parser between contexts
func WithParser(p *parser.Parser) Option {
	return func(c *Context) {
		c.parser = p
	}
}

// NewContext creates an empty run context
func NewContext(opts ...Option) *Context {
	c := &Context{
		Sections: NewSectionRegistry(),
		Pages:    NewPageRegistry(),
		pending:  newForwardRefs(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.markdown == nil {
		c.markdown = markdown.NewRenderer().Render
	}
	if c.readFile == nil {
		c.readFile = os.ReadFile
	}
	if c.parser == nil {
		c.parser = parser.NewParser()
	}
	return c
}

// Markdown renders src with the configured renderer
func (c *Context) Markdown(src string) (string, error) {
	return c.markdown(src)
}

// ReadFile loads a referenced file with the configured reader
func (c *Context) ReadFile(path string) ([]byte, error) {
	return c.readFile(path)
}

// Pending returns the number of parent names still waiting to be defined
func (c *Context) Pending() int {
	return c.pending.len()
}

// Resolve must be called once every file has been parsed. It returns the
// reference error of the earliest @sectionof whose parent never appeared.
func (c *Context) Resolve() error {
	if pc, ok := c.pending.first(); ok {
		return pc.err
	}
	return nil
}
