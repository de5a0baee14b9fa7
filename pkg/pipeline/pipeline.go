// Package pipeline provides the core rendering pipeline for keydraw.
//
// This package implements the complete load → validate → plan → render
// pipeline shared by every command. Centralizing this logic keeps the
// behavior of draw, check, and plan consistent.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse the layout and keymap documents and cross-validate them
//  2. Plan: compute absolute geometry for every key
//  3. Render: produce output artifacts (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    LayoutPath: "corne.yaml",
//	    KeymapPath: "keymap.yaml",
//	}
//	opts.SetDefaults()
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/keydraw/keydraw/pkg/board"
	"github.com/keydraw/keydraw/pkg/errors"
	"github.com/keydraw/keydraw/pkg/keymap"
	"github.com/keydraw/keydraw/pkg/render/styles"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// ValidateFormats checks that all requested formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat,
				"invalid format: %s (must be %q or %q)", f, FormatSVG, FormatJSON)
		}
	}
	return nil
}

// Options contains all configuration for the rendering pipeline.
type Options struct {
	// Input documents
	LayoutPath string
	KeymapPath string // optional for bare-board rendering
	ThemePath  string // optional TOML theme

	// Render options
	Formats []string

	// Theme resolved from ThemePath; set explicitly to skip file loading.
	Theme *styles.Theme
}

// SetDefaults fills unset options with pipeline defaults.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the parsed physical layout.
	Layout *board.Layout

	// Plan is the computed geometry.
	Plan *board.Plan

	// Keymap is the parsed keymap, nil when no keymap path was given.
	Keymap *keymap.Keymap

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	KeyCount   int
	LayerCount int
	ComboCount int
	LoadTime   time.Duration
	PlanTime   time.Duration
	RenderTime time.Duration
}

// Runner executes pipeline stages with consistent logging.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil logger falls back to the
// default charmbracelet logger.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{logger: logger}
}
