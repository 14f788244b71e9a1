package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/QTest-hq/livingstyle/internal/config"
	"github.com/QTest-hq/livingstyle/internal/generator"
)

// projectFlags are the flags shared by every command that runs a build.
// Set flags win over the project file.
type projectFlags struct {
	dir        string
	configFile string

	source   []string
	dest     string
	template string
	title    string
	style    string

	minify   bool
	loadCSS  bool
	revision bool
	manifest bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.dir, "dir", "d", ".", "Project directory")
	cmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Project config file (default <dir>/"+config.ProjectFile+")")
	cmd.Flags().StringSliceVarP(&f.source, "source", "s", nil, "Glob patterns of stylesheets to parse")
	cmd.Flags().StringVarP(&f.dest, "dest", "o", "", "Output directory")
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Page template file")
	cmd.Flags().StringVar(&f.title, "title", "", "Style guide title")
	cmd.Flags().StringVar(&f.style, "style", "", "Highlight style for code snippets")
	cmd.Flags().BoolVar(&f.minify, "minify", false, "Minify the generated pages")
	cmd.Flags().BoolVar(&f.loadCSS, "loadcss", true, "Link the parsed .css files from every page")
	cmd.Flags().BoolVar(&f.revision, "revision", true, "Stamp the git revision into every page")
	cmd.Flags().BoolVar(&f.manifest, "manifest", false, "Write "+generator.ManifestFile+" next to the pages")
}

// load reads the project config, applies the flags and resolves relative
// paths against the project directory
func (f *projectFlags) load(cmd *cobra.Command) (*config.ProjectConfig, error) {
	var (
		cfg *config.ProjectConfig
		err error
	)
	if f.configFile != "" {
		cfg, err = config.LoadProjectConfigFile(f.configFile)
	} else {
		cfg, err = config.LoadProjectConfig(f.dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}

	cfg.Merge(&config.ProjectConfig{
		Source:         f.source,
		Dest:           f.dest,
		Template:       f.template,
		Title:          f.title,
		HighlightStyle: f.style,
	})

	if cmd.Flags().Changed("minify") {
		cfg.Minify = f.minify
	}
	if cmd.Flags().Changed("loadcss") {
		cfg.LoadCSS = f.loadCSS
	}
	if cmd.Flags().Changed("revision") {
		cfg.Revision = f.revision
	}
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest = f.manifest
	}

	resolvePaths(f.dir, cfg)
	return cfg, nil
}

// resolvePaths anchors relative sources, dest and template at dir
func resolvePaths(dir string, cfg *config.ProjectConfig) {
	sources := make([]string, 0, len(cfg.Source))
	for _, s := range cfg.Source {
		sources = append(sources, filepath.ToSlash(anchor(dir, s)))
	}
	cfg.Source = sources

	cfg.Dest = anchor(dir, cfg.Dest)
	if cfg.Template != "" {
		cfg.Template = anchor(dir, cfg.Template)
	}
}

func anchor(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, filepath.FromSlash(path))
}
