package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/keydraw/keydraw/pkg/pipeline"
)

// newPlanCmd creates the plan command for inspecting computed geometry.
// It renders the layout's key plan as JSON without requiring a keymap,
// which is useful when designing a new physical layout document.
func newPlanCmd() *cobra.Command {
	var output, theme string

	cmd := &cobra.Command{
		Use:   "plan <layout.yaml>",
		Short: "Print the computed key geometry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), args[0], output, theme)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&theme, "theme", "", "TOML theme file overriding default dimensions")

	return cmd
}

func runPlan(ctx context.Context, layoutPath, output, theme string) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	result, err := runner.Execute(ctx, pipeline.Options{
		LayoutPath: layoutPath,
		ThemePath:  theme,
		Formats:    []string{pipeline.FormatJSON},
	})
	if err != nil {
		return err
	}

	if err := writeArtifact(output, result.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}
	if output != "" {
		logger.Infof("Generated %s", output)
	}
	return nil
}
