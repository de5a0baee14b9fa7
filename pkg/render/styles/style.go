// Package styles defines the visual appearance of rendered board
// diagrams: a Style interface for the drawing primitives and a Theme
// for dimensions and colors, loadable from TOML files.
package styles

import "bytes"

// Style defines the visual appearance for board rendering.
// Implementations control how keys, labels, combos, and captions are drawn.
type Style interface {
	// RenderDefs writes the <style> element and any shared defs.
	RenderDefs(buf *bytes.Buffer, t Theme)
	// RenderKey writes the SVG for a single key: shape and labels.
	RenderKey(buf *bytes.Buffer, t Theme, k KeyBox)
	// RenderCombo writes the SVG for a combo annotation at its anchor.
	RenderCombo(buf *bytes.Buffer, t Theme, c ComboBox)
	// RenderCaption writes the SVG for a layer name caption.
	RenderCaption(buf *bytes.Buffer, t Theme, name string)
}

// KeyBox contains all data needed to render a single key.
type KeyBox struct {
	Index      int     // ZMK-style position index
	X, Y, W, H float64 // key shape rectangle
	Tap        string  // main label; words stack as separate lines
	Hold       string  // secondary label near the bottom edge
	Held       bool    // apply held/highlight styling
}

// ComboBox contains positioning data for rendering a combo annotation.
type ComboBox struct {
	X, Y  float64 // midpoint anchor between the two combo keys
	Label string
}
