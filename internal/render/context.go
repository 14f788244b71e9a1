package render

import "github.com/QTest-hq/livingstyle/internal/styleguide"

// NavItem is one navbar entry
type NavItem struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Selected bool   `json:"selected,omitempty"`
}

// Site is everything shared by the pages of one run
type Site struct {
	Title             string
	FooterHTML        string
	MenuButtonHTML    string
	Pages             []*styleguide.Page
	AllSections       []*styleguide.Block
	Stylesheets       []string
	GlobalStylesheets []string
	Scripts           []string
	Revision          string
	RunID             string
}

// PageContext is the template data for one page. AllSections holds a deep
// copy of every section per page, so a preprocess hook can edit one page
// without affecting the others or the parsed tree. Sections are the page's
// own blocks.
type PageContext struct {
	Title             string
	FooterHTML        string
	MenuButtonHTML    string
	Page              *styleguide.Page
	Sections          []*styleguide.Block
	AllSections       []*styleguide.Block
	Navbar            []NavItem
	Stylesheets       []string
	GlobalStylesheets []string
	Scripts           []string
	Revision          string
	RunID             string

	// Data is free for preprocess hooks and custom templates
	Data map[string]any
}

// PageContexts builds one context per page, in page order. The navbar is
// only set when there is more than one page.
func (s *Site) PageContexts() []*PageContext {
	contexts := make([]*PageContext, 0, len(s.Pages))

	for i, page := range s.Pages {
		pc := &PageContext{
			Title:             s.Title,
			FooterHTML:        s.FooterHTML,
			MenuButtonHTML:    s.MenuButtonHTML,
			Page:              page,
			Sections:          clone(page.Sections),
			AllSections:       cloneBlocks(s.AllSections),
			Stylesheets:       clone(s.Stylesheets),
			GlobalStylesheets: clone(s.GlobalStylesheets),
			Scripts:           clone(s.Scripts),
			Revision:          s.Revision,
			RunID:             s.RunID,
			Data:              make(map[string]any),
		}

		if len(s.Pages) > 1 {
			pc.Navbar = make([]NavItem, len(s.Pages))
			for j, p := range s.Pages {
				pc.Navbar[j] = NavItem{
					Name:     p.Name,
					URL:      p.ID + ".html",
					Selected: i == j,
				}
			}
		}

		contexts = append(contexts, pc)
	}

	return contexts
}

func cloneBlocks(blocks []*styleguide.Block) []*styleguide.Block {
	if blocks == nil {
		return nil
	}
	out := make([]*styleguide.Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
