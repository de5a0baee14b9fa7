package keymap

import (
	"github.com/keydraw/keydraw/pkg/board"
	"github.com/keydraw/keydraw/pkg/errors"
)

// Validate checks the keymap against the computed plan of its layout:
// every layer must have exactly one label per key position, and every
// combo must reference two in-range, geometrically adjacent keys.
//
// Validation is all-or-nothing: the first failure is returned and
// nothing may be rendered from an invalid pair.
func Validate(km *Keymap, plan *board.Plan) error {
	want := plan.KeyCount()
	for _, layer := range km.Layers {
		if len(layer.Keys) != want {
			return errors.New(errors.ErrCodeShapeMismatch,
				"layer %q has %d labels, layout has %d keys", layer.Name, len(layer.Keys), want)
		}
	}

	for i, combo := range km.Combos {
		if len(combo.Positions) != 2 {
			return errors.New(errors.ErrCodeSchema,
				"combo %d: needs exactly two positions, got %d", i, len(combo.Positions))
		}
		a, b := combo.Positions[0], combo.Positions[1]
		if a < 0 || a >= want || b < 0 || b >= want {
			return errors.New(errors.ErrCodeSchema,
				"combo %d: positions %d and %d must be in range 0..%d", i, a, b, want-1)
		}
		if !board.Adjacent(plan.Keys[a], plan.Keys[b]) {
			return errors.New(errors.ErrCodeComboAdjacency,
				"combo %d: positions %d and %d are not adjacent", i, a, b)
		}
		for _, name := range combo.Layers {
			if _, ok := km.Layer(name); !ok {
				return errors.New(errors.ErrCodeSchema,
					"combo %d: unknown layer %q", i, name)
			}
		}
	}
	return nil
}
