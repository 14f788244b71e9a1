package styleguide

import "sort"

// SortOrder lists pages, and sections within a page, in the order they
// should render. Names are compared normalized.
type SortOrder struct {
	PageOrder    []string
	SectionOrder map[string][]string
}

// NewSortOrder creates an empty order
func NewSortOrder() *SortOrder {
	return &SortOrder{
		PageOrder:    make([]string, 0),
		SectionOrder: make(map[string][]string),
	}
}

// AddPage appends a page to the page order
func (o *SortOrder) AddPage(name string) {
	o.PageOrder = append(o.PageOrder, Normalize(name))
}

// AddSections appends section names to a page's section order
func (o *SortOrder) AddSections(page string, sections ...string) {
	key := Normalize(page)
	order := o.SectionOrder[key]
	if order == nil {
		order = make([]string, 0, len(sections))
	}
	for _, s := range sections {
		order = append(order, Normalize(s))
	}
	o.SectionOrder[key] = order
}

// Sections returns the section order of a page
func (o *SortOrder) Sections(page string) []string {
	return o.SectionOrder[Normalize(page)]
}

// Apply sorts the pages of c and the sections of each page
func (o *SortOrder) Apply(c *Context) {
	SortByName(c.Pages.list, func(p *Page) string { return p.Name }, o.PageOrder)
	for _, page := range c.Pages.list {
		if order := o.Sections(page.Name); len(order) > 0 {
			SortByName(page.Sections, func(b *Block) string { return b.Name }, order)
		}
	}
}

// SortByName orders items by the position of their normalized name in
// order. Items not listed keep their relative order after the listed ones.
func SortByName[T any](items []T, name func(T) string, order []string) {
	index := make(map[string]int, len(order))
	for i, n := range order {
		n = Normalize(n)
		if _, ok := index[n]; !ok {
			index[n] = i
		}
	}

	rank := func(item T) int {
		if i, ok := index[Normalize(name(item))]; ok {
			return i
		}
		return len(order)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return rank(items[i]) < rank(items[j])
	})
}
