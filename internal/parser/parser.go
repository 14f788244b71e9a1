package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
)

// Parser extracts documentation comments from stylesheet sources.
// Plain CSS goes through tree-sitter; preprocessor dialects, which the CSS
// grammar does not understand, go through ScanComments.
type Parser struct {
	mu        sync.Mutex
	cssParser *sitter.Parser
}

// NewParser creates a new parser
func NewParser() *Parser {
	cssParser := sitter.NewParser()
	cssParser.SetLanguage(css.GetLanguage())

	return &Parser{
		cssParser: cssParser,
	}
}

// ParseFile reads and parses a single file
func (p *Parser) ParseFile(ctx context.Context, filePath string) ([]*Comment, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseContent(ctx, filePath, string(content))
}

// ParseContent returns the documentation comments in content, in source order
func (p *Parser) ParseContent(ctx context.Context, filePath, content string) ([]*Comment, error) {
	raw, err := p.ExtractComments(ctx, filePath, content)
	if err != nil {
		return nil, err
	}

	comments := make([]*Comment, 0, len(raw))
	for _, rc := range raw {
		comments = append(comments, Tokenize(rc.Text, rc.Line))
	}
	return comments, nil
}

// ExtractComments returns the raw /** ... */ comments in content
func (p *Parser) ExtractComments(ctx context.Context, filePath, content string) ([]RawComment, error) {
	switch lang := DetectLanguage(filePath); lang {
	case LanguageCSS:
		return p.extractCSSComments(ctx, content)
	case LanguageSCSS, LanguageSass, LanguageLess, LanguageStylus:
		return ScanComments(content, true), nil
	default:
		return ScanComments(content, false), nil
	}
}

func (p *Parser) extractCSSComments(ctx context.Context, content string) ([]RawComment, error) {
	source := []byte(content)

	p.mu.Lock()
	tree, err := p.cssParser.ParseCtx(ctx, nil, source)
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	comments := make([]RawComment, 0)
	cursor := sitter.NewTreeCursor(tree.RootNode())
	defer cursor.Close()

	p.walkTree(cursor, func(n *sitter.Node) {
		if n.Type() != "comment" {
			return
		}
		text := n.Content(source)
		if isDocComment(text) {
			comments = append(comments, RawComment{
				Text: text,
				Line: int(n.StartPoint().Row),
			})
		}
	})

	return comments, nil
}

// walkTree walks the tree and calls fn for each node
func (p *Parser) walkTree(cursor *sitter.TreeCursor, fn func(*sitter.Node)) {
	for {
		fn(cursor.CurrentNode())

		if cursor.GoToFirstChild() {
			continue
		}

		for {
			if cursor.GoToNextSibling() {
				break
			}
			if !cursor.GoToParent() {
				return
			}
		}
	}
}

// DetectLanguage detects the stylesheet dialect from the file extension
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".css":
		return LanguageCSS
	case ".scss":
		return LanguageSCSS
	case ".sass":
		return LanguageSass
	case ".less":
		return LanguageLess
	case ".styl":
		return LanguageStylus
	default:
		return LanguageUnknown
	}
}
