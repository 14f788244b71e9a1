package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/QTest-hq/livingstyle/internal/styleguide"
)

// ManifestFile is written next to the pages when Options.Manifest is set
const ManifestFile = "styleguide.json"

// Manifest indexes a generated style guide for tooling
type Manifest struct {
	Version   string          `json:"version"`
	RunID     string          `json:"run_id"`
	Revision  string          `json:"revision,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Summary   ManifestSummary `json:"summary"`
	Pages     []ManifestPage  `json:"pages"`
}

type ManifestSummary struct {
	Files    int            `json:"files"`
	Pages    int            `json:"pages"`
	Sections int            `json:"sections"`
	ByPage   map[string]int `json:"by_page"`
	ByFile   map[string]int `json:"by_file"`
}

type ManifestPage struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	File     string            `json:"file"`
	Sections []ManifestSection `json:"sections"`
}

type ManifestSection struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Depth  int    `json:"depth"`
	Parent string `json:"parent,omitempty"`
	File   string `json:"file,omitempty"`
	Line   int    `json:"line,omitempty"`
}

// NewManifest indexes a parsed tree
func NewManifest(tree *Tree, revision string) *Manifest {
	m := &Manifest{
		Version:   "1.0",
		RunID:     tree.RunID,
		Revision:  revision,
		CreatedAt: time.Now(),
		Summary: ManifestSummary{
			Files:    len(tree.Files),
			Pages:    len(tree.Pages),
			Sections: len(tree.all),
			ByPage:   make(map[string]int),
			ByFile:   make(map[string]int),
		},
		Pages: make([]ManifestPage, 0, len(tree.Pages)),
	}

	for _, s := range tree.all {
		if s.File != "" {
			m.Summary.ByFile[s.File]++
		}
	}

	for _, p := range tree.Pages {
		page := ManifestPage{
			ID:       p.ID,
			Name:     p.Name,
			File:     p.ID + ".html",
			Sections: make([]ManifestSection, 0),
		}
		for _, s := range p.Sections {
			page.Sections = appendSection(page.Sections, s)
		}
		m.Summary.ByPage[p.ID] = len(page.Sections)
		m.Pages = append(m.Pages, page)
	}

	return m
}

// appendSection flattens a subtree depth first
func appendSection(out []ManifestSection, s *styleguide.Block) []ManifestSection {
	out = append(out, ManifestSection{
		ID:     s.ID,
		Name:   s.Name,
		Depth:  s.Depth,
		Parent: s.Parent,
		File:   s.File,
		Line:   s.Line,
	})
	for _, child := range s.Children {
		out = appendSection(out, child)
	}
	return out
}

// Save writes the manifest into dest and returns its path
func (m *Manifest) Save(dest string) (string, error) {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal manifest: %w", err)
	}

	path := filepath.Join(dest, ManifestFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return path, nil
}

// LoadManifest reads a manifest written by Save
func LoadManifest(dest string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dest, ManifestFile))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
