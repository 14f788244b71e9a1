package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the project config file name
const ProjectFile = ".livingstyle.yaml"

// ProjectConfig represents a .livingstyle.yaml file
type ProjectConfig struct {
	Version string `yaml:"version"`

	// Glob patterns of stylesheets to parse, in order
	Source []string `yaml:"source"`

	// Output directory
	Dest string `yaml:"dest"`

	// html/template file; empty uses the built-in template
	Template string `yaml:"template,omitempty"`

	Minify bool `yaml:"minify"`

	// Link every parsed .css file from the generated pages
	LoadCSS bool `yaml:"loadcss"`

	// Stamp the git revision into the pages
	Revision bool `yaml:"revision"`

	// Write styleguide.json next to the pages
	Manifest bool `yaml:"manifest,omitempty"`

	// Page chrome
	Title          string `yaml:"title,omitempty"`
	FooterHTML     string `yaml:"footer_html,omitempty"`
	MenuButtonHTML string `yaml:"menu_button_html,omitempty"`

	// Extra assets linked from every page
	Stylesheets []string `yaml:"stylesheets,omitempty"`
	Scripts     []string `yaml:"scripts,omitempty"`

	// Chroma style for code snippets
	HighlightStyle string `yaml:"highlight_style,omitempty"`

	SortOrder SortOrder `yaml:"sort_order,omitempty"`

	// Custom tag name to the built-in tag it stands for
	Tags map[string]string `yaml:"tags,omitempty"`
}

// DefaultProjectConfig returns sensible defaults
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Version:        "1.0",
		Source:         []string{"**/*.css"},
		Dest:           "styleguide",
		LoadCSS:        true,
		Revision:       true,
		Title:          "Living Style Guide",
		FooterHTML:     "Style guide generated with livingstyle.",
		MenuButtonHTML: "&#9776; Menu",
		HighlightStyle: "github",
	}
}

// LoadProjectConfig loads a .livingstyle.yaml from the given directory
func LoadProjectConfig(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ProjectFile)

	// Check if config exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Also try .livingstyle.yml
		configPath = filepath.Join(dir, ".livingstyle.yml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return DefaultProjectConfig(), nil
		}
	}

	return LoadProjectConfigFile(configPath)
}

// LoadProjectConfigFile loads a config from an explicit path
func LoadProjectConfigFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultProjectConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveProjectConfig saves the config to .livingstyle.yaml
func SaveProjectConfig(dir string, cfg *ProjectConfig) error {
	configPath := filepath.Join(dir, ProjectFile)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// Merge applies overrides from another config (e.g., CLI flags)
func (c *ProjectConfig) Merge(other *ProjectConfig) {
	if other == nil {
		return
	}

	if len(other.Source) > 0 {
		c.Source = other.Source
	}

	if other.Dest != "" {
		c.Dest = other.Dest
	}

	if other.Template != "" {
		c.Template = other.Template
	}

	if other.Title != "" {
		c.Title = other.Title
	}

	if other.HighlightStyle != "" {
		c.HighlightStyle = other.HighlightStyle
	}

	if len(other.Stylesheets) > 0 {
		c.Stylesheets = other.Stylesheets
	}

	if len(other.Scripts) > 0 {
		c.Scripts = other.Scripts
	}

	if len(other.SortOrder) > 0 {
		c.SortOrder = other.SortOrder
	}

	for name, target := range other.Tags {
		if c.Tags == nil {
			c.Tags = make(map[string]string)
		}
		c.Tags[name] = target
	}
}
