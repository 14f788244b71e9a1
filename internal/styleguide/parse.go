package styleguide

import (
	"context"
	"fmt"
)

// ParseComments parses every documentation comment in content and
// dispatches its tags. It can be called once per file against the same
// Context to build a cross-file tree. onBlock, when set, receives each block
// after all of its tags were handled. The first handler error aborts.
func (c *Context) ParseComments(ctx context.Context, content, file string, handlers *Handlers, onBlock func(*Block)) error {
	comments, err := c.parser.ParseContent(ctx, file, content)
	if err != nil {
		return fmt.Errorf("failed to extract comments from %s: %w", file, err)
	}

	for _, comment := range comments {
		block, err := c.ParseComment(comment, file, handlers)
		if err != nil {
			return err
		}
		if onBlock != nil {
			onBlock(block)
		}
	}
	return nil
}

// ParseComment dispatches the tags of one comment in order and returns the
// resulting block. Aliased tag names in comment are rewritten to the tag
// they stand for.
//
// @doc tags run first because they rewrite the comment itself: they can add
// tags, extend the description and name the section.
func (c *Context) ParseComment(comment *Comment, file string, handlers *Handlers) (*Block, error) {
	if handlers == nil {
		handlers = NewHandlers()
	}

	for i := range comment.Tags {
		comment.Tags[i].Tag = handlers.Canonical(comment.Tags[i].Tag)
	}

	block := &Block{
		File: file,
		Line: comment.Line + 1,
	}

	docHandler, hasDoc := handlers.Lookup("doc")
	if hasDoc {
		for i := 0; i < len(comment.Tags); i++ {
			if comment.Tags[i].Tag != "doc" {
				continue
			}
			tag := comment.Tags[i]
			if err := docHandler(c.tagContext(block, comment, file, &tag)); err != nil {
				return nil, err
			}
		}
	}

	// comment.Tags may grow while iterating
	for i := 0; i < len(comment.Tags); i++ {
		tag := comment.Tags[i]
		if hasDoc && tag.Tag == "doc" {
			continue
		}

		if handler, ok := handlers.Lookup(tag.Tag); ok {
			if err := handler(c.tagContext(block, comment, file, &tag)); err != nil {
				return nil, err
			}
			continue
		}

		if err := c.foldTag(block, &tag); err != nil {
			return nil, err
		}
	}

	// root sections without an explicit page land on the index page
	if block.IsSection && block.Page == "" && block.Parent == "" {
		page, ok := handlers.Lookup("page")
		if !ok {
			page = pageHandler
		}
		tag := &Tag{Tag: "page", Description: "index", Line: comment.Line}
		if err := page(c.tagContext(block, comment, file, tag)); err != nil {
			return nil, err
		}
	}

	return block, nil
}

func (c *Context) tagContext(block *Block, comment *Comment, file string, tag *Tag) *TagContext {
	return &TagContext{
		Block:    block,
		Comment:  comment,
		File:     file,
		Sections: c.Sections,
		Pages:    c.Pages,
		Tag:      tag,
		State:    c,
	}
}

// foldTag stores an unrecognized tag as a block property: true for a bare
// tag, the description string, or a *Property when the tag has a name or a
// type. A Property always carries a string description, empty when the tag
// had none.
func (c *Context) foldTag(block *Block, tag *Tag) error {
	if tag.Name == "" && tag.Type == "" {
		if tag.Description == "" {
			block.Set(tag.Tag, true)
		} else {
			block.Set(tag.Tag, tag.Description)
		}
		return nil
	}

	prop := &Property{
		Description: tag.Description,
		Name:        tag.Name,
		Type:        tag.Type,
	}
	if tag.Type == "markdown" {
		html, err := c.markdown(tag.Description)
		if err != nil {
			return fmt.Errorf("@%s: %w", tag.Tag, err)
		}
		prop.Description = html
	}

	block.Set(tag.Tag, prop)
	return nil
}
