package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SortEntry orders one page and, optionally, its sections
type SortEntry struct {
	Page     string
	Sections []string
}

// SortOrder is the sort_order setting. In YAML it can be any of:
//
//	sort_order: [index, components]          # pages only
//	sort_order: {index: [colors, buttons]}   # pages and their sections
//	sort_order:                              # a mix
//	  - index
//	  - [forms, tables]
//	  - components: [buttons, cards]
type SortOrder []SortEntry

// Pages returns the page names in order
func (s SortOrder) Pages() []string {
	pages := make([]string, 0, len(s))
	for _, e := range s {
		pages = append(pages, e.Page)
	}
	return pages
}

// UnmarshalYAML accepts every sort_order shape
func (s *SortOrder) UnmarshalYAML(node *yaml.Node) error {
	var entries SortOrder

	switch node.Kind {
	case yaml.ScalarNode:
		entries = append(entries, SortEntry{Page: node.Value})
	case yaml.MappingNode:
		mapped, err := mappingEntries(node)
		if err != nil {
			return err
		}
		entries = append(entries, mapped...)
	case yaml.SequenceNode:
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				entries = append(entries, SortEntry{Page: item.Value})
			case yaml.SequenceNode:
				var pages []string
				if err := item.Decode(&pages); err != nil {
					return fmt.Errorf("sort_order line %d: %w", item.Line, err)
				}
				for _, p := range pages {
					entries = append(entries, SortEntry{Page: p})
				}
			case yaml.MappingNode:
				mapped, err := mappingEntries(item)
				if err != nil {
					return err
				}
				entries = append(entries, mapped...)
			default:
				return fmt.Errorf("sort_order line %d: unsupported entry", item.Line)
			}
		}
	default:
		return fmt.Errorf("sort_order line %d: expected a list or a map", node.Line)
	}

	*s = entries
	return nil
}

// mappingEntries decodes "page: [sections]" pairs, keeping key order
func mappingEntries(node *yaml.Node) ([]SortEntry, error) {
	entries := make([]SortEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		entry := SortEntry{Page: key.Value}
		if value.Kind == yaml.ScalarNode && value.Tag != "!!null" {
			entry.Sections = []string{value.Value}
		} else if value.Kind == yaml.SequenceNode {
			if err := value.Decode(&entry.Sections); err != nil {
				return nil, fmt.Errorf("sort_order line %d: %w", value.Line, err)
			}
		} else if value.Tag != "!!null" {
			return nil, fmt.Errorf("sort_order line %d: sections of %q must be a list", value.Line, key.Value)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MarshalYAML writes pages without sections as plain names and the rest as
// single-key maps
func (s SortOrder) MarshalYAML() (any, error) {
	out := make([]any, 0, len(s))
	for _, e := range s {
		if len(e.Sections) == 0 {
			out = append(out, e.Page)
			continue
		}
		out = append(out, map[string][]string{e.Page: e.Sections})
	}
	return out, nil
}
