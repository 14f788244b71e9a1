package styleguide

import "encoding/json"

// SectionRegistry keeps sections in encounter order plus a key index.
// Keys are bare names for root sections and "Parent.Child" for nested ones;
// each key is also indexed in normalized form.
type SectionRegistry struct {
	list  []*Block
	byKey map[string]*Block
}

// NewSectionRegistry creates an empty registry
func NewSectionRegistry() *SectionRegistry {
	return &SectionRegistry{
		list:  make([]*Block, 0),
		byKey: make(map[string]*Block),
	}
}

// Append adds a section to the ordered list
func (r *SectionRegistry) Append(b *Block) {
	r.list = append(r.list, b)
}

// Register indexes b under key. It returns false, leaving the index
// untouched, when key is already taken.
func (r *SectionRegistry) Register(key string, b *Block) bool {
	if r.Has(key) {
		return false
	}
	r.byKey[key] = b
	r.byKey[Normalize(key)] = b
	return true
}

// Has reports whether key, or its normalized form, is registered
func (r *SectionRegistry) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Lookup finds a section by exact key, falling back to the normalized key
func (r *SectionRegistry) Lookup(key string) (*Block, bool) {
	if b, ok := r.byKey[key]; ok {
		return b, true
	}
	b, ok := r.byKey[Normalize(key)]
	return b, ok
}

// All returns every section in encounter order
func (r *SectionRegistry) All() []*Block {
	return r.list
}

// Roots returns the sections without a parent, in encounter order
func (r *SectionRegistry) Roots() []*Block {
	roots := make([]*Block, 0)
	for _, b := range r.list {
		if b.IsRoot() {
			roots = append(roots, b)
		}
	}
	return roots
}

// Len returns the number of sections, not the number of keys
func (r *SectionRegistry) Len() int {
	return len(r.list)
}

// MarshalJSON encodes the ordered list
func (r *SectionRegistry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.list)
}

// PageRegistry keeps pages in first-seen order plus a name index
type PageRegistry struct {
	list   []*Page
	byName map[string]*Page
}

// NewPageRegistry creates an empty registry
func NewPageRegistry() *PageRegistry {
	return &PageRegistry{
		list:   make([]*Page, 0),
		byName: make(map[string]*Page),
	}
}

// Add appends a page and indexes it by name and normalized name
func (r *PageRegistry) Add(p *Page) {
	r.list = append(r.list, p)
	r.byName[p.Name] = p
	r.byName[Normalize(p.Name)] = p
}

// Lookup finds a page by name, falling back to the normalized name
func (r *PageRegistry) Lookup(name string) (*Page, bool) {
	if p, ok := r.byName[name]; ok {
		return p, true
	}
	p, ok := r.byName[Normalize(name)]
	return p, ok
}

// All returns every page in order
func (r *PageRegistry) All() []*Page {
	return r.list
}

// Len returns the number of pages
func (r *PageRegistry) Len() int {
	return len(r.list)
}

// MarshalJSON encodes the ordered list
func (r *PageRegistry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.list)
}
