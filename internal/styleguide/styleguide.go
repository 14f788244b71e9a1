// Package styleguide turns tagged stylesheet comments into a tree of
// sections grouped by page.
//
// A run shares one Context across every source file. Each comment becomes a
// Block; tag handlers fold the comment's tags into the block and, for
// @section blocks, wire it into the section and page registries. Children
// may name a parent that has not been seen yet; those references are kept
// pending until the parent appears, and Resolve reports any that never do.
package styleguide

import "github.com/QTest-hq/livingstyle/internal/parser"

// MaxDepth is the deepest heading level a section can render at
const MaxDepth = 6

// Snippet is an example or code body
type Snippet struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

// Clone returns an independent copy
func (s *Snippet) Clone() *Snippet {
	if s == nil {
		return nil
	}
	return &Snippet{Description: s.Description, Type: s.Type}
}

// Property is the value stored for an unrecognized tag that carries a name
// or a type
type Property struct {
	Description string `json:"description"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Block accumulates the output of one comment. A block that went through
// the @section handler is a section.
type Block struct {
	Name        string   `json:"name,omitempty"`
	ID          string   `json:"id,omitempty"`
	Description string   `json:"description,omitempty"` // HTML
	Depth       int      `json:"depth,omitempty"`
	IsSection   bool     `json:"isSection,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	Parents     []string `json:"parents,omitempty"`
	Page        string   `json:"page,omitempty"`
	Children    []*Block `json:"children,omitempty"`
	Example     *Snippet `json:"example,omitempty"`
	Code        *Snippet `json:"code,omitempty"`
	HideCode    bool     `json:"hideCode,omitempty"`
	Namespace   string   `json:"namespace,omitempty"`

	// Props holds unrecognized tags. Values are a string, true, a *Property,
	// or a []any when the tag repeats within one comment.
	Props map[string]any `json:"props,omitempty"`

	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"` // 1-based

	parent *Block // primary parent once attached
}

// Section is a block produced by @section
type Section = Block

// Set stores a property. The first value for a key is stored as is; a
// second value turns the entry into a list and later values append to it.
func (b *Block) Set(key string, value any) {
	if b.Props == nil {
		b.Props = make(map[string]any)
	}

	existing, ok := b.Props[key]
	if !ok {
		b.Props[key] = value
		return
	}

	list, isList := existing.([]any)
	if !isList {
		list = []any{existing}
	}
	b.Props[key] = append(list, value)
}

// Get returns a property
func (b *Block) Get(key string) (any, bool) {
	v, ok := b.Props[key]
	return v, ok
}

// Clone returns a deep copy of the block and its subtree. Snippets, props
// and children are copied; the copy's children point at the copy.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}

	out := *b
	out.Parents = cloneSlice(b.Parents)
	out.Example = b.Example.Clone()
	out.Code = b.Code.Clone()

	if b.Props != nil {
		out.Props = make(map[string]any, len(b.Props))
		for k, v := range b.Props {
			out.Props[k] = cloneProp(v)
		}
	}

	if b.Children != nil {
		out.Children = make([]*Block, len(b.Children))
		for i, child := range b.Children {
			c := child.Clone()
			if c.parent == b {
				c.parent = &out
			}
			out.Children[i] = c
		}
	}

	return &out
}

func cloneProp(v any) any {
	switch p := v.(type) {
	case *Property:
		cp := *p
		return &cp
	case []any:
		out := make([]any, len(p))
		for i, item := range p {
			out[i] = cloneProp(item)
		}
		return out
	default:
		return v
	}
}

func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

// IsRoot reports whether the section has no parent
func (b *Block) IsRoot() bool {
	return b.Parent == ""
}

// Page groups sections into one generated document
type Page struct {
	Name     string   `json:"name"`
	ID       string   `json:"id"`
	Sections []*Block `json:"sections"`
}

// Comment re-exports the parser type handlers receive
type Comment = parser.Comment

// Tag re-exports the parser type handlers receive
type Tag = parser.Tag
