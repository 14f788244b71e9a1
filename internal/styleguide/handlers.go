package styleguide

// TagContext is what a tag handler receives. Block is owned by the current
// dispatch; the registries are shared by the whole run.
type TagContext struct {
	Block    *Block
	Comment  *Comment
	File     string
	Sections *SectionRegistry
	Pages    *PageRegistry
	Tag      *Tag
	State    *Context
}

// Handler interprets one tag. Handlers mutate the context in place.
type Handler func(tc *TagContext) error

// Handlers maps tag names to their handler. An alias is another spelling
// of a registered tag; comments are rewritten to the canonical name before
// dispatch, so every rule that looks for a tag by name also sees its aliases.
type Handlers struct {
	fns     map[string]Handler
	aliases map[string]string
}

// NewHandlers returns an empty handler set
func NewHandlers() *Handlers {
	return &Handlers{
		fns:     make(map[string]Handler),
		aliases: make(map[string]string),
	}
}

// DefaultHandlers returns a fresh set of the built-in tags
func DefaultHandlers() *Handlers {
	h := NewHandlers()
	h.fns["section"] = sectionHandler
	h.fns["sectionof"] = sectionofHandler
	h.fns["page"] = pageHandler
	h.fns["example"] = exampleHandler
	h.fns["code"] = exampleHandler
	h.fns["hideCode"] = hideCodeHandler
	h.fns["doc"] = docHandler
	h.fns["namespace"] = namespaceHandler
	return h
}

// Register adds or replaces a custom handler
func (h *Handlers) Register(name string, fn Handler) error {
	if name == "" {
		return syntaxError("", nil, "custom tag must have a name")
	}
	if fn == nil {
		return syntaxError("", nil, "handler for custom tag @%s is not a function", name)
	}
	h.fns[name] = fn
	delete(h.aliases, name)
	return nil
}

// Alias registers name as another spelling of target. The target handler
// sees the tag under its own name, so @ejemplo aliased to example fills the
// example snippet.
func (h *Handlers) Alias(name, target string) error {
	if name == "" {
		return syntaxError("", nil, "tag alias must have a name")
	}
	target = h.Canonical(target)
	if _, ok := h.fns[target]; !ok {
		return referenceError("", nil, "cannot alias @%s to unknown tag @%s", name, target)
	}
	if name == target {
		return nil
	}
	delete(h.fns, name)
	h.aliases[name] = target
	return nil
}

// Canonical returns the tag name an alias stands for, or name itself
func (h *Handlers) Canonical(name string) string {
	if h == nil {
		return name
	}
	if target, ok := h.aliases[name]; ok {
		return target
	}
	return name
}

// Lookup returns the handler for a tag name or one of its aliases
func (h *Handlers) Lookup(name string) (Handler, bool) {
	if h == nil {
		return nil, false
	}
	fn, ok := h.fns[h.Canonical(name)]
	return fn, ok
}

// Clone returns a copy that can be extended without touching h
func (h *Handlers) Clone() *Handlers {
	out := NewHandlers()
	for k, v := range h.fns {
		out.fns[k] = v
	}
	for k, v := range h.aliases {
		out.aliases[k] = v
	}
	return out
}
