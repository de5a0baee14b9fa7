// Package svg renders computed board geometry as a standalone SVG
// document, one grouped section per keymap layer.
package svg

import (
	"bytes"
	"fmt"

	"github.com/keydraw/keydraw/pkg/board"
	"github.com/keydraw/keydraw/pkg/errors"
	"github.com/keydraw/keydraw/pkg/keymap"
	"github.com/keydraw/keydraw/pkg/render/styles"
)

// Option configures SVG rendering via [Render].
type Option func(*renderer)

type renderer struct {
	keymap *keymap.Keymap
	style  styles.Style
	theme  styles.Theme
}

// WithKeymap attaches the keymap whose layers and combos are drawn.
// Without it a single bare section with blank keys is rendered.
func WithKeymap(km *keymap.Keymap) Option { return func(r *renderer) { r.keymap = km } }

// WithStyle overrides the drawing style.
func WithStyle(s styles.Style) Option { return func(r *renderer) { r.style = s } }

// WithTheme overrides the theme. The theme must match the metrics the
// plan was built with, or key shapes and labels will disagree.
func WithTheme(t styles.Theme) Option { return func(r *renderer) { r.theme = t } }

// Render produces the SVG document for the plan. Output is
// deterministic: identical input yields byte-identical bytes.
func Render(plan *board.Plan, opts ...Option) ([]byte, error) {
	r := renderer{style: styles.Plain{}, theme: styles.Default()}
	for _, opt := range opts {
		opt(&r)
	}

	layers := r.layers(plan)
	for _, l := range layers {
		if len(l.Keys) != plan.KeyCount() {
			return nil, errors.New(errors.ErrCodeShapeMismatch,
				"layer %q has %d labels, layout has %d keys", l.Name, len(l.Keys), plan.KeyCount())
		}
	}

	if r.keymap != nil {
		if err := checkCombos(r.keymap, plan); err != nil {
			return nil, err
		}
	}

	t := r.theme
	boardW := plan.Width + 2*t.OuterPadX
	boardH := float64(len(layers))*plan.Height + float64(len(layers)+1)*t.OuterPadY

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">`+"\n",
		styles.FormatFloat(boardW), styles.FormatFloat(boardH),
		styles.FormatFloat(boardW), styles.FormatFloat(boardH))
	r.style.RenderDefs(&buf, t)

	y := t.OuterPadY
	for _, layer := range layers {
		r.renderLayer(&buf, plan, layer, t.OuterPadX, y)
		y += plan.Height + t.OuterPadY
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// layers resolves the sections to draw: the keymap's layers, or one
// anonymous all-blank section when no keymap is attached.
func (r *renderer) layers(plan *board.Plan) []keymap.Layer {
	if r.keymap != nil {
		return r.keymap.Layers
	}
	return []keymap.Layer{{Keys: make([]keymap.Key, plan.KeyCount())}}
}

func (r *renderer) renderLayer(buf *bytes.Buffer, plan *board.Plan, layer keymap.Layer, x, y float64) {
	fmt.Fprintf(buf, `<g id="layer-%s" transform="translate(%s, %s)">`+"\n",
		styles.EscapeXML(layer.Name), styles.FormatFloat(x), styles.FormatFloat(y))

	if layer.Name != "" {
		r.style.RenderCaption(buf, r.theme, layer.Name)
	}

	for _, k := range plan.Keys {
		label := layer.Keys[k.Index]
		r.style.RenderKey(buf, r.theme, styles.KeyBox{
			Index: k.Index,
			X:     k.X, Y: k.Y, W: k.W, H: k.H,
			Tap:  label.Tap,
			Hold: label.Hold,
			Held: label.Held,
		})
	}

	if r.keymap != nil {
		for _, combo := range r.keymap.Combos {
			if !comboOnLayer(combo, layer.Name) {
				continue
			}
			mx, my := board.Midpoint(plan.Keys[combo.Positions[0]], plan.Keys[combo.Positions[1]])
			r.style.RenderCombo(buf, r.theme, styles.ComboBox{X: mx, Y: my, Label: combo.Key.Tap})
		}
	}

	buf.WriteString("</g>\n")
}

// checkCombos rejects combos that do not reference two in-range
// positions. Adjacency is the validator's concern; this only protects
// the sink from indexing past the plan.
func checkCombos(km *keymap.Keymap, plan *board.Plan) error {
	n := plan.KeyCount()
	for i, c := range km.Combos {
		if len(c.Positions) != 2 {
			return errors.New(errors.ErrCodeSchema, "combo %d: needs exactly two positions", i)
		}
		for _, p := range c.Positions {
			if p < 0 || p >= n {
				return errors.New(errors.ErrCodeSchema, "combo %d: position %d out of range 0..%d", i, p, n-1)
			}
		}
	}
	return nil
}

// comboOnLayer reports whether the combo annotation belongs on the
// named layer. Combos without a layer list appear on every layer.
func comboOnLayer(c keymap.Combo, name string) bool {
	if len(c.Layers) == 0 {
		return true
	}
	for _, l := range c.Layers {
		if l == name {
			return true
		}
	}
	return false
}
