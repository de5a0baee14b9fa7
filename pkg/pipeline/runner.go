package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/keydraw/keydraw/pkg/board"
	"github.com/keydraw/keydraw/pkg/errors"
	"github.com/keydraw/keydraw/pkg/keymap"
	"github.com/keydraw/keydraw/pkg/observability"
	"github.com/keydraw/keydraw/pkg/render/jsonsink"
	"github.com/keydraw/keydraw/pkg/render/styles"
	"github.com/keydraw/keydraw/pkg/render/svg"
)

// Execute runs the complete pipeline. All validation happens before any
// artifact is produced: an invalid input pair never yields output.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	result, err := r.Load(ctx, &opts)
	if err != nil {
		return nil, err
	}
	if err := r.Plan(ctx, &opts, result); err != nil {
		return nil, err
	}
	if err := r.Render(ctx, &opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Load parses the layout, keymap, and theme documents and validates the
// keymap against the layout's computed plan.
func (r *Runner) Load(ctx context.Context, opts *Options) (result *Result, err error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.LayoutPath, opts.KeymapPath)
	defer func() {
		var keys, layers int
		if result != nil {
			keys = result.Stats.KeyCount
			layers = result.Stats.LayerCount
		}
		observability.Pipeline().OnLoadComplete(ctx, keys, layers, time.Since(start), err)
	}()

	layoutData, err := readInput(opts.LayoutPath, "layout")
	if err != nil {
		return nil, err
	}
	layout, err := board.Parse(layoutData)
	if err != nil {
		return nil, err
	}
	r.logger.Debugf("Parsed %s", layout)

	result = &Result{
		Layout:    layout,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.KeyCount = layout.KeyCount()

	if opts.Theme == nil {
		theme := styles.Default()
		if opts.ThemePath != "" {
			theme, err = styles.Load(opts.ThemePath)
			if err != nil {
				return nil, err
			}
			r.logger.Debugf("Loaded theme %s", opts.ThemePath)
		}
		opts.Theme = &theme
	}

	if opts.KeymapPath != "" {
		keymapData, err := readInput(opts.KeymapPath, "keymap")
		if err != nil {
			return nil, err
		}
		km, err := keymap.Parse(keymapData)
		if err != nil {
			return nil, err
		}
		if km.Layout != "" && layout.Name != "" && km.Layout != layout.Name {
			return nil, errors.New(errors.ErrCodeSchema,
				"keymap targets layout %q, document is %q", km.Layout, layout.Name)
		}
		result.Keymap = km
		result.Stats.LayerCount = len(km.Layers)
		result.Stats.ComboCount = len(km.Combos)
	}

	result.Stats.LoadTime = time.Since(start)
	return result, nil
}

// Plan computes key geometry and finishes validation: shape and combo
// checks need the plan, so they run here.
func (r *Runner) Plan(ctx context.Context, opts *Options, result *Result) (err error) {
	start := time.Now()
	observability.Pipeline().OnPlanStart(ctx, result.Stats.KeyCount)
	defer func() {
		observability.Pipeline().OnPlanComplete(ctx, time.Since(start), err)
	}()

	plan, err := board.Build(result.Layout, opts.Theme.Metrics())
	if err != nil {
		return err
	}
	result.Plan = plan
	r.logger.Debugf("Computed geometry: %d keys, %.0fx%.0f", plan.KeyCount(), plan.Width, plan.Height)

	if result.Keymap != nil {
		if err := keymap.Validate(result.Keymap, plan); err != nil {
			return err
		}
		r.logger.Debugf("Validated keymap: %d layers, %d combos",
			result.Stats.LayerCount, result.Stats.ComboCount)
	}

	result.Stats.PlanTime = time.Since(start)
	return nil
}

// Render produces one artifact per requested format.
func (r *Runner) Render(ctx context.Context, opts *Options, result *Result) (err error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	for _, format := range opts.Formats {
		var data []byte
		switch format {
		case FormatSVG:
			svgOpts := []svg.Option{svg.WithTheme(*opts.Theme)}
			if result.Keymap != nil {
				svgOpts = append(svgOpts, svg.WithKeymap(result.Keymap))
			}
			data, err = svg.Render(result.Plan, svgOpts...)
		case FormatJSON:
			var jsonOpts []jsonsink.Option
			if result.Keymap != nil {
				jsonOpts = append(jsonOpts, jsonsink.WithKeymap(result.Keymap))
			}
			data, err = jsonsink.Render(result.Plan, jsonOpts...)
		default:
			err = errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s", format)
		}
		if err != nil {
			return err
		}
		result.Artifacts[format] = data
		r.logger.Debugf("Rendered %s: %d bytes", format, len(data))
	}

	result.Stats.RenderTime = time.Since(start)
	return nil
}

// readInput loads one input document, mapping a missing file to a
// structured not-found error.
func readInput(path, kind string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s file %s", kind, path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s file %s", kind, path)
	}
	return data, nil
}
