package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keydraw/keydraw/pkg/pipeline"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "svg", "json"
	theme   string   // optional TOML theme file
}

// newDrawCmd creates the draw command for rendering layout diagrams.
// It reads a physical layout file and an optional keymap file and writes
// the rendered diagram in the requested formats.
//
// Default settings:
//   - format: svg
//   - output: stdout (single format), input base name (multiple formats)
func newDrawCmd() *cobra.Command {
	var formatsStr string
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw <layout.yaml> [keymap.yaml]",
		Short: "Render a keyboard layout diagram",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			keymapPath := ""
			if len(args) > 1 {
				keymapPath = args[1]
			}
			return runDraw(cmd.Context(), args[0], keymapPath, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "TOML theme file overriding default dimensions and colors")

	return cmd
}

// runDraw executes the rendering pipeline and writes the resulting artifacts.
// With a single requested format the artifact goes to opts.output, or stdout
// when no output is given. With multiple formats each artifact is written to
// a file derived from the base path.
func runDraw(ctx context.Context, layoutPath, keymapPath string, opts *drawOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := pipeline.NewRunner(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		LayoutPath: layoutPath,
		KeymapPath: keymapPath,
		ThemePath:  opts.theme,
		Formats:    opts.formats,
	})
	if err != nil {
		return err
	}

	if len(opts.formats) == 1 {
		if err := writeArtifact(opts.output, result.Artifacts[opts.formats[0]]); err != nil {
			return err
		}
		if opts.output != "" {
			logger.Infof("Generated %s", opts.output)
		}
	} else {
		input := layoutPath
		if keymapPath != "" {
			input = keymapPath
		}
		base := basePath(opts.output, input)
		for _, format := range opts.formats {
			path := base + "." + format
			if err := writeArtifact(path, result.Artifacts[format]); err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			logger.Infof("Generated %s", path)
		}
	}

	prog.done(fmt.Sprintf("Rendered %d keys across %d layers",
		result.Stats.KeyCount, result.Stats.LayerCount))
	return nil
}

// writeArtifact writes data to path, or stdout when path is empty.
func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.Write(data)
	return err
}
