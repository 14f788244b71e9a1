package parser

// Language represents a stylesheet dialect
type Language string

const (
	LanguageCSS     Language = "css"
	LanguageSCSS    Language = "scss"
	LanguageSass    Language = "sass"
	LanguageLess    Language = "less"
	LanguageStylus  Language = "stylus"
	LanguageUnknown Language = "unknown"
)

// Tag is one @name annotation inside a documentation comment
type Tag struct {
	Tag         string `json:"tag"`
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
	Line        int    `json:"line"` // 0-based source line
}

// Comment is one parsed /** ... */ documentation block
type Comment struct {
	Description string `json:"description"` // free text before the first tag
	Tags        []Tag  `json:"tags"`
	Line        int    `json:"line"` // 0-based line of the opening /**
}

// Find returns the first tag with the given name
func (c *Comment) Find(name string) *Tag {
	for i := range c.Tags {
		if c.Tags[i].Tag == name {
			return &c.Tags[i]
		}
	}
	return nil
}

// FindAll returns every tag with the given name, in order
func (c *Comment) FindAll(name string) []Tag {
	var tags []Tag
	for _, t := range c.Tags {
		if t.Tag == name {
			tags = append(tags, t)
		}
	}
	return tags
}

// RawComment is an unparsed comment found in a source file
type RawComment struct {
	Text string
	Line int // 0-based line of the opening delimiter
}
