package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keydraw/keydraw/pkg/errors"
	"github.com/keydraw/keydraw/pkg/pipeline"
)

// newCheckCmd creates the check command for validating inputs.
// It runs the load and plan stages of the pipeline without rendering,
// so a passing check guarantees that draw will succeed on the same inputs.
func newCheckCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "check <layout.yaml> [keymap.yaml]",
		Short: "Validate a layout and keymap without rendering",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keymapPath := ""
			if len(args) > 1 {
				keymapPath = args[1]
			}
			return runCheck(cmd.Context(), args[0], keymapPath, theme)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "TOML theme file to validate alongside the inputs")

	return cmd
}

// runCheck validates the inputs and prints a styled report.
// Validation failures are reported with their error code and returned so
// the process exits non-zero.
func runCheck(ctx context.Context, layoutPath, keymapPath, themePath string) error {
	logger := loggerFromContext(ctx)
	runner := pipeline.NewRunner(logger)

	opts := pipeline.Options{
		LayoutPath: layoutPath,
		KeymapPath: keymapPath,
		ThemePath:  themePath,
	}
	opts.SetDefaults()

	result, err := runner.Load(ctx, &opts)
	if err == nil {
		err = runner.Plan(ctx, &opts, result)
	}
	if err != nil {
		printError("%s", errors.UserMessage(err))
		if code := errors.GetCode(err); code != "" {
			printKeyValue("code", string(code))
		}
		return err
	}

	name := result.Layout.Name
	if name == "" {
		name = layoutPath
	}
	printSuccess("%s is valid", name)
	printStats(result.Stats.KeyCount, result.Stats.LayerCount, result.Stats.ComboCount)
	printKeyValue("width", fmt.Sprintf("%.1f units", result.Plan.Units))
	printKeyValue("rows", fmt.Sprintf("%d", result.Plan.Rows))
	return nil
}
