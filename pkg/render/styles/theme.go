package styles

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/keydraw/keydraw/pkg/board"
	"github.com/keydraw/keydraw/pkg/errors"
)

// Theme holds every tunable visual parameter: key dimensions, padding,
// corner radii, typography, and the color palette. Values not set in a
// theme file keep their defaults.
type Theme struct {
	KeyWidth    float64 `toml:"key_width"`
	KeyHeight   float64 `toml:"key_height"`
	KeyRx       float64 `toml:"key_rx"`
	KeyRy       float64 `toml:"key_ry"`
	InnerPadX   float64 `toml:"inner_pad_x"`
	InnerPadY   float64 `toml:"inner_pad_y"`
	OuterPadX   float64 `toml:"outer_pad_x"`
	OuterPadY   float64 `toml:"outer_pad_y"`
	LineSpacing float64 `toml:"line_spacing"`

	FontFamily string  `toml:"font_family"`
	FontSize   float64 `toml:"font_size"`

	KeyFill   string `toml:"key_fill"`
	KeyStroke string `toml:"key_stroke"`
	TextFill  string `toml:"text_fill"`
	HeldFill  string `toml:"held_fill"`
	ComboFill string `toml:"combo_fill"`
}

// Default returns the standard theme.
func Default() Theme {
	return Theme{
		KeyWidth:    55,
		KeyHeight:   50,
		KeyRx:       6,
		KeyRy:       6,
		InnerPadX:   2,
		InnerPadY:   2,
		OuterPadX:   27.5,
		OuterPadY:   50,
		LineSpacing: 18,
		FontFamily:  "SFMono-Regular,Consolas,Liberation Mono,Menlo,monospace",
		FontSize:    14,
		KeyFill:     "#f6f8fa",
		KeyStroke:   "#d6d8da",
		TextFill:    "#24292e",
		HeldFill:    "#fdd",
		ComboFill:   "#cdf",
	}
}

// Load reads a TOML theme file on top of the defaults. Unknown keys and
// non-positive dimensions are rejected.
func Load(path string) (Theme, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, errors.Wrap(errors.ErrCodeFileNotFound, err, "theme file %s", path)
		}
		return t, errors.Wrap(errors.ErrCodeSchema, err, "read theme %s", path)
	}

	meta, err := toml.Decode(string(data), &t)
	if err != nil {
		return t, errors.Wrap(errors.ErrCodeSchema, err, "parse theme %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return t, errors.New(errors.ErrCodeSchema, "theme %s: unknown key %q", path, undecoded[0].String())
	}

	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate rejects themes with non-positive key dimensions or negative
// spacing, which would produce degenerate geometry.
func (t Theme) Validate() error {
	if t.KeyWidth <= 0 || t.KeyHeight <= 0 {
		return errors.New(errors.ErrCodeSchema,
			"theme key dimensions must be positive, got %vx%v", t.KeyWidth, t.KeyHeight)
	}
	if t.InnerPadX < 0 || t.InnerPadY < 0 || t.OuterPadX < 0 || t.OuterPadY < 0 {
		return errors.New(errors.ErrCodeSchema, "theme padding cannot be negative")
	}
	if t.LineSpacing <= 0 {
		return errors.New(errors.ErrCodeSchema, "theme line_spacing must be positive, got %v", t.LineSpacing)
	}
	if t.FontSize <= 0 {
		return errors.New(errors.ErrCodeSchema, "theme font_size must be positive, got %v", t.FontSize)
	}
	return nil
}

// Metrics converts the theme into the unit-grid scale used by the
// layout engine.
func (t Theme) Metrics() board.Metrics {
	return board.Metrics{
		KeyWidth:  t.KeyWidth,
		KeyHeight: t.KeyHeight,
		InnerPadX: t.InnerPadX,
		InnerPadY: t.InnerPadY,
	}
}

// CSS renders the stylesheet embedded in the SVG output.
func (t Theme) CSS() string {
	return fmt.Sprintf(`
    svg {
        font-family: %s;
        font-size: %spx;
        font-kerning: normal;
        text-rendering: optimizeLegibility;
        fill: %s;
    }

    rect {
        fill: %s;
        stroke: %s;
        stroke-width: 1;
    }

    .held {
        fill: %s;
    }

    .combo {
        fill: %s;
    }
`, t.FontFamily, FormatFloat(t.FontSize), t.TextFill, t.KeyFill, t.KeyStroke, t.HeldFill, t.ComboFill)
}
