// Package jsonsink exports computed board geometry and resolved labels
// as JSON for external tooling and layout debugging.
package jsonsink

import (
	"encoding/json"

	"github.com/keydraw/keydraw/pkg/board"
	"github.com/keydraw/keydraw/pkg/errors"
	"github.com/keydraw/keydraw/pkg/keymap"
)

// Option configures JSON rendering via [Render].
type Option func(*renderer)

type renderer struct {
	keymap *keymap.Keymap
}

// WithKeymap includes resolved layers and combos in the export.
func WithKeymap(km *keymap.Keymap) Option { return func(r *renderer) { r.keymap = km } }

type output struct {
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Units    float64     `json:"units"`
	KeyCount int         `json:"key_count"`
	Keys     []jsonKey   `json:"keys"`
	Layers   []jsonLayer `json:"layers,omitempty"`
	Combos   []jsonCombo `json:"combos,omitempty"`
}

type jsonKey struct {
	Index  int     `json:"index"`
	Row    int     `json:"row"`
	Half   string  `json:"half"`
	Thumb  bool    `json:"thumb,omitempty"`
	U      float64 `json:"u"`
	Units  float64 `json:"units"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

type jsonLayer struct {
	Name   string      `json:"name"`
	Labels []jsonLabel `json:"labels"`
}

type jsonLabel struct {
	Tap  string `json:"tap,omitempty"`
	Hold string `json:"hold,omitempty"`
	Held bool   `json:"held,omitempty"`
}

type jsonCombo struct {
	Positions []int   `json:"positions"`
	Label     string  `json:"label"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Render produces indented JSON for the plan. Output is deterministic.
func Render(plan *board.Plan, opts ...Option) ([]byte, error) {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}

	out := output{
		Width:    plan.Width,
		Height:   plan.Height,
		Units:    plan.Units,
		KeyCount: plan.KeyCount(),
		Keys:     make([]jsonKey, 0, len(plan.Keys)),
	}
	for _, k := range plan.Keys {
		out.Keys = append(out.Keys, jsonKey{
			Index: k.Index,
			Row:   k.Row,
			Half:  k.Half.String(),
			Thumb: k.Thumb,
			U:     k.U,
			Units: k.Units,
			X:     k.X, Y: k.Y, Width: k.W, Height: k.H,
		})
	}

	if r.keymap != nil {
		for _, layer := range r.keymap.Layers {
			jl := jsonLayer{Name: layer.Name, Labels: make([]jsonLabel, 0, len(layer.Keys))}
			for _, k := range layer.Keys {
				jl.Labels = append(jl.Labels, jsonLabel{Tap: k.Tap, Hold: k.Hold, Held: k.Held})
			}
			out.Layers = append(out.Layers, jl)
		}
		for i, combo := range r.keymap.Combos {
			if len(combo.Positions) != 2 ||
				combo.Positions[0] < 0 || combo.Positions[0] >= len(plan.Keys) ||
				combo.Positions[1] < 0 || combo.Positions[1] >= len(plan.Keys) {
				return nil, errors.New(errors.ErrCodeSchema, "combo %d: invalid positions %v", i, combo.Positions)
			}
			mx, my := board.Midpoint(plan.Keys[combo.Positions[0]], plan.Keys[combo.Positions[1]])
			out.Combos = append(out.Combos, jsonCombo{
				Positions: combo.Positions,
				Label:     combo.Key.Tap,
				X:         mx, Y: my,
			})
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout JSON")
	}
	return append(data, '\n'), nil
}
