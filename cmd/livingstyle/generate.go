package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/QTest-hq/livingstyle/internal/config"
	"github.com/QTest-hq/livingstyle/internal/generator"
)

func generateCmd() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the style guide pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, &flags)
			if err != nil {
				return err
			}

			log.Info().
				Strs("source", opts.Source).
				Str("dest", opts.Dest).
				Msg("generating style guide")

			result, err := generator.NewGenerator().Generate(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("failed to generate style guide: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d pages from %d files in %s\n", len(result.Written), len(result.Files), result.Duration)
			for _, path := range result.Written {
				fmt.Fprintf(out, "  %s\n", path)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// buildOptions loads the project and process config into run options
func buildOptions(cmd *cobra.Command, flags *projectFlags) (generator.Options, error) {
	project, err := flags.load(cmd)
	if err != nil {
		return generator.Options{}, err
	}

	env, err := config.Load()
	if err != nil {
		return generator.Options{}, fmt.Errorf("failed to load config: %w", err)
	}

	opts := generator.OptionsFromConfig(project)
	opts.Concurrency = env.Concurrency
	return opts, nil
}
