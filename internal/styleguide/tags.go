package styleguide

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	firstLineRegex = regexp.MustCompile(`^[\n\r]?([^\n\r]+)`)

	// a single-line relative or absolute path ending in an extension
	filePathRegex = regexp.MustCompile(`^[\w.~/-][\w .~/\\-]*\.([A-Za-z0-9]+)$`)
)

// extensions @example, @code and @doc treat as file references
var fileExtensions = map[string]bool{
	"html": true, "htm": true, "hbs": true, "handlebars": true, "mustache": true,
	"tmpl": true, "twig": true, "njk": true, "erb": true, "php": true, "vue": true,
	"css": true, "scss": true, "sass": true, "less": true, "styl": true,
	"js": true, "mjs": true, "jsx": true, "ts": true, "tsx": true, "json": true,
	"md": true, "markdown": true, "txt": true, "svg": true, "xml": true,
}

// sectionHandler handles @section [name].
//
// Without a tag description the first line of the comment description is the
// name and the rest is the description.
func sectionHandler(tc *TagContext) error {
	name := strings.TrimSpace(tc.Tag.Description)
	description := tc.Comment.Description

	if name == "" {
		m := firstLineRegex.FindStringSubmatch(description)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			return syntaxError(tc.File, tc.Tag, "unnamed section")
		}
		name = strings.TrimSpace(m[1])
		description = strings.TrimLeft(description[len(m[0]):], "\r\n")
	}

	html, err := tc.State.Markdown(description)
	if err != nil {
		return err
	}

	b := tc.Block
	b.Name = name
	b.Description = html
	b.IsSection = true
	if b.Depth == 0 {
		b.Depth = 1
	}
	b.ID = Slug(name)
	if b.Parent != "" {
		b.ID = childID(b.Parent, b.ID)
	}

	tc.Sections.Append(b)

	keys := registrationKeys(tc.Comment, name)
	for _, k := range keys {
		if tc.Sections.Register(k.key, b) {
			continue
		}
		if k.parent != "" {
			return syntaxError(tc.File, tc.Tag, "section '%s' is already defined in section '%s'", name, k.parent)
		}
		return syntaxError(tc.File, tc.Tag, "section '%s' is already defined", name)
	}

	names := []string{name}
	for _, k := range keys {
		names = append(names, k.key)
	}
	for _, n := range names {
		for _, pc := range tc.State.pending.take(n) {
			attach(b, pc.block, pc.primary)
		}
	}

	return nil
}

type registrationKey struct {
	parent string
	key    string
}

// registrationKeys returns "Parent.name" for every @sectionof on the
// comment, or the bare name for a root section
func registrationKeys(comment *Comment, name string) []registrationKey {
	var keys []registrationKey
	for _, t := range comment.FindAll("sectionof") {
		parent := strings.TrimSpace(t.Description)
		if parent == "" {
			continue
		}
		keys = append(keys, registrationKey{parent: parent, key: parent + "." + name})
	}
	if len(keys) == 0 {
		keys = []registrationKey{{key: name}}
	}
	return keys
}

// sectionofHandler handles @sectionof <parent>. The first @sectionof on a
// block is its primary parent and decides depth and id; later ones only add
// the block to more parents.
func sectionofHandler(tc *TagContext) error {
	parentName := strings.TrimSpace(tc.Tag.Description)
	if parentName == "" {
		return referenceError(tc.File, tc.Tag, "@sectionof must reference a section")
	}

	b := tc.Block
	primary := b.Parent == ""
	b.Parents = append(b.Parents, parentName)

	if primary {
		b.Parent = parentName
		if b.Name != "" {
			b.ID = childID(parentName, Slug(b.Name))
		}
	}

	if parent, ok := tc.Sections.Lookup(parentName); ok {
		attach(parent, b, primary)
		return nil
	}

	if primary {
		setDepth(b, min(strings.Count(parentName, ".")+2, MaxDepth))
	}
	tc.State.pending.add(parentName, pendingChild{
		block:   b,
		primary: primary,
		err:     referenceError(tc.File, tc.Tag, "section '%s' is not defined", parentName),
	})
	return nil
}

// attach appends child to parent. A primary child takes its depth from the
// parent.
func attach(parent, child *Block, primary bool) {
	parent.Children = append(parent.Children, child)
	if primary {
		child.parent = parent
		setDepth(child, min(parent.Depth+1, MaxDepth))
	}
}

// setDepth updates b and its descendants. Stops at unchanged depths, which
// also bounds the walk when a tree is malformed into a cycle.
func setDepth(b *Block, depth int) {
	if b.Depth == depth {
		return
	}
	b.Depth = depth
	for _, child := range b.Children {
		if child.parent != b {
			continue
		}
		setDepth(child, min(depth+1, MaxDepth))
	}
}

// pageHandler handles @page <name>
func pageHandler(tc *TagContext) error {
	name := strings.TrimSpace(tc.Tag.Description)
	if name == "" {
		return syntaxError(tc.File, tc.Tag, "@page must name a page")
	}

	b := tc.Block
	b.Page = name

	if page, ok := tc.Pages.Lookup(name); ok {
		page.Sections = append(page.Sections, b)
		return nil
	}

	tc.Pages.Add(&Page{
		Name:     name,
		ID:       Slug(name),
		Sections: []*Block{b},
	})
	return nil
}

// exampleHandler handles @example and @code, which share a format:
// @example [{type}] <markup or file path>
func exampleHandler(tc *TagContext) error {
	description := strings.TrimRightFunc(tc.Tag.Description, unicode.IsSpace)

	if path, ok := referencedFile(tc.File, description); ok {
		data, err := tc.State.ReadFile(path)
		if err != nil {
			return referenceError(tc.File, tc.Tag, "file not found '%s'", path)
		}
		description = string(data)
	}

	typ := tc.Tag.Type
	if typ == "" {
		typ = "markup"
	}
	snippet := &Snippet{Description: description, Type: typ}

	b := tc.Block
	if tc.Tag.Tag == "code" {
		b.Code = snippet
	} else {
		b.Example = snippet
		if b.Code == nil && !b.HideCode {
			b.Code = snippet.Clone()
		}
	}

	// &#64; lets fenced examples contain at-rules without starting a tag
	if b.Code != nil {
		b.Code.Description = strings.ReplaceAll(b.Code.Description, "&#64;", "@")
	}
	return nil
}

// hideCodeHandler handles @hideCode
func hideCodeHandler(tc *TagContext) error {
	tc.Block.HideCode = true
	tc.Block.Code = nil
	return nil
}

// namespaceHandler handles @namespace <name>
func namespaceHandler(tc *TagContext) error {
	tc.Block.Namespace = strings.TrimSpace(tc.Tag.Description)
	return nil
}

// referencedFile reports whether description names a file and resolves it
// against the directory of the source file
func referencedFile(source, description string) (string, bool) {
	m := filePathRegex.FindStringSubmatch(description)
	if m == nil || !fileExtensions[strings.ToLower(m[1])] {
		return "", false
	}
	if filepath.IsAbs(description) {
		return filepath.Clean(description), true
	}
	return filepath.Join(filepath.Dir(source), description), true
}
