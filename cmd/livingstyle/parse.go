package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/QTest-hq/livingstyle/internal/generator"
	"github.com/QTest-hq/livingstyle/internal/styleguide"
)

func parseCmd() *cobra.Command {
	var (
		flags  projectFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse the stylesheets and show the section tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, &flags)
			if err != nil {
				return err
			}

			tree, err := generator.NewGenerator().Parse(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to parse style guide: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tree)
			}

			printTree(cmd.OutOrStdout(), tree)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the tree as JSON")

	return cmd
}

func printTree(w io.Writer, tree *generator.Tree) {
	fmt.Fprintf(w, "Files: %d\n", len(tree.Files))
	fmt.Fprintf(w, "Pages: %d\n", len(tree.Pages))
	fmt.Fprintf(w, "Sections: %d\n", len(tree.All()))

	for _, page := range tree.Pages {
		fmt.Fprintf(w, "\n%s (%s.html)\n", page.Name, page.ID)
		for _, s := range page.Sections {
			printSection(w, s, 1)
		}
	}
}

func printSection(w io.Writer, s *styleguide.Block, indent int) {
	fmt.Fprintf(w, "%s- %s [%s]", strings.Repeat("  ", indent), s.Name, s.ID)
	if s.File != "" {
		fmt.Fprintf(w, " %s:%d", s.File, s.Line)
	}
	fmt.Fprintln(w)

	for _, child := range s.Children {
		printSection(w, child, indent+1)
	}
}
