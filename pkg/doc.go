// Package pkg provides the core libraries for keydraw keyboard diagrams.
//
// # Overview
//
// Keydraw turns declarative keyboard descriptions into SVG diagrams. A
// physical layout document describes key positions and sizes; a keymap
// document assigns labels per layer. The pkg directory is organized into
// a small number of focused areas:
//
//  1. [board] - Physical layout schema and key geometry
//  2. [keymap] - Keymap schema and validation against a board plan
//  3. [render] - Output sinks (SVG, JSON) and the theme/style system
//  4. [pipeline] - Orchestration (load → plan → render)
//  5. [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through keydraw:
//
//	layout.yaml + keymap.yaml
//	         ↓
//	    [board] package (parse layout, compute key plan)
//	         ↓
//	    [keymap] package (parse layers, validate shape and combos)
//	         ↓
//	    [render] package (themes + SVG/JSON sinks)
//	         ↓
//	    SVG/JSON output
//
// # Quick Start
//
// Load a layout and keymap and render an SVG:
//
//	import (
//	    "os"
//	    "github.com/keydraw/keydraw/pkg/board"
//	    "github.com/keydraw/keydraw/pkg/keymap"
//	    "github.com/keydraw/keydraw/pkg/render/styles"
//	    "github.com/keydraw/keydraw/pkg/render/svg"
//	)
//
//	// 1. Parse the layout and compute geometry
//	layoutData, _ := os.ReadFile("corne.yaml")
//	layout, _ := board.Parse(layoutData)
//	plan, _ := board.Build(layout, styles.Default().Metrics())
//
//	// 2. Parse and validate the keymap
//	keymapData, _ := os.ReadFile("keymap.yaml")
//	km, _ := keymap.Parse(keymapData)
//	_ = keymap.Validate(km, plan)
//
//	// 3. Render to SVG
//	out, _ := svg.Render(plan, svg.WithKeymap(km))
//
// Most callers should use the pipeline package instead, which wires these
// steps together with consistent validation, logging, and error codes.
package pkg
