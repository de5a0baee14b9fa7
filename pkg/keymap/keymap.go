// Package keymap defines the keymap document schema: named layers of
// key labels, hold-tap pairs, and combos.
//
// A keymap references a physical layout by shape: every layer must have
// exactly one label per key position of the layout's computed plan.
// [Parse] decodes the YAML document; [Validate] checks it against a
// [board.Plan].
package keymap

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/keydraw/keydraw/pkg/errors"
)

// Key is the display value assigned to one key position: a tap label,
// an optional hold label, and an optional held highlight. The zero
// value is a blank key.
type Key struct {
	Tap  string
	Hold string
	Held bool
}

// IsBlank reports whether the key has no labels at all.
func (k Key) IsBlank() bool {
	return k.Tap == "" && k.Hold == ""
}

// UnmarshalYAML accepts the three label forms: null (blank), a plain
// scalar (tap only), or a mapping with t/tap, h/hold and type fields.
func (k *Key) UnmarshalYAML(n *yaml.Node) error {
	if n.Tag == "!!null" {
		*k = Key{}
		return nil
	}

	if n.Kind == yaml.ScalarNode {
		var s string
		if err := n.Decode(&s); err != nil {
			return fmt.Errorf("label must be a string: %w", err)
		}
		*k = Key{Tap: s}
		return nil
	}

	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("label must be a string, null, or a {t, h} mapping")
	}

	var raw struct {
		T    *string `yaml:"t"`
		Tap  *string `yaml:"tap"`
		H    *string `yaml:"h"`
		Hold *string `yaml:"hold"`
		Type string  `yaml:"type"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}

	*k = Key{}
	switch {
	case raw.T != nil:
		k.Tap = *raw.T
	case raw.Tap != nil:
		k.Tap = *raw.Tap
	default:
		return fmt.Errorf("label mapping needs a t or tap field")
	}
	if raw.H != nil {
		k.Hold = *raw.H
	} else if raw.Hold != nil {
		k.Hold = *raw.Hold
	}

	switch raw.Type {
	case "":
	case "held":
		k.Held = true
	default:
		return fmt.Errorf("label type must be empty or %q, got %q", "held", raw.Type)
	}
	return nil
}

// Layer is a named, ordered label assignment: one Key per position.
type Layer struct {
	Name string
	Keys []Key
}

// Combo is an action triggered by two adjacent keys pressed together.
// Layers restricts which layer sections the annotation is drawn on; an
// empty list means every layer.
type Combo struct {
	Positions []int    `yaml:"positions"`
	Key       Key      `yaml:"key"`
	Layers    []string `yaml:"layers"`
}

// Keymap is a parsed keymap document. Layers preserve document order so
// rendering output is author-controlled and deterministic.
type Keymap struct {
	Layout string
	Layers []Layer
	Combos []Combo
}

// Layer returns the named layer, if present.
func (km *Keymap) Layer(name string) (Layer, bool) {
	for _, l := range km.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// document is the raw YAML shape of a keymap file. Layers is decoded at
// the node level to preserve mapping order.
type document struct {
	Layout string    `yaml:"layout"`
	Layers yaml.Node `yaml:"layers"`
	Combos []Combo   `yaml:"combos"`
}

// Parse decodes a keymap document. Structural problems are reported as
// schema errors; shape and adjacency checks need the computed plan and
// happen in [Validate].
func Parse(data []byte) (*Keymap, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "parse keymap document")
	}

	km := &Keymap{
		Layout: doc.Layout,
		Combos: doc.Combos,
	}

	layers, err := decodeLayers(&doc.Layers)
	if err != nil {
		return nil, err
	}
	km.Layers = layers

	for i, combo := range km.Combos {
		if len(combo.Positions) != 2 {
			return nil, errors.New(errors.ErrCodeSchema,
				"combo %d: needs exactly two positions, got %d", i, len(combo.Positions))
		}
		if combo.Positions[0] == combo.Positions[1] {
			return nil, errors.New(errors.ErrCodeSchema,
				"combo %d: positions must be distinct, got %d twice", i, combo.Positions[0])
		}
	}
	return km, nil
}

func decodeLayers(n *yaml.Node) ([]Layer, error) {
	if n.Kind == 0 {
		return nil, errors.New(errors.ErrCodeSchema, "layers is required")
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.New(errors.ErrCodeSchema, "layers must be a mapping of layer name to label list")
	}
	if len(n.Content) == 0 {
		return nil, errors.New(errors.ErrCodeSchema, "layers cannot be empty")
	}

	layers := make([]Layer, 0, len(n.Content)/2)
	seen := make(map[string]bool)
	for i := 0; i+1 < len(n.Content); i += 2 {
		nameNode, keysNode := n.Content[i], n.Content[i+1]

		var name string
		if err := nameNode.Decode(&name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err, "layer name must be a string")
		}
		if seen[name] {
			return nil, errors.New(errors.ErrCodeSchema, "duplicate layer %q", name)
		}
		seen[name] = true

		if keysNode.Kind != yaml.SequenceNode {
			return nil, errors.New(errors.ErrCodeSchema, "layer %q must be a list of labels", name)
		}
		// Walk the sequence node by node: yaml.v3 skips null sequence
		// elements when decoding into a slice, but a null entry is a
		// blank key that must keep its position.
		keys := make([]Key, 0, len(keysNode.Content))
		for j, keyNode := range keysNode.Content {
			if keyNode.Tag == "!!null" {
				keys = append(keys, Key{})
				continue
			}
			var k Key
			if err := keyNode.Decode(&k); err != nil {
				return nil, errors.Wrap(errors.ErrCodeSchema, err, "layer %q entry %d", name, j)
			}
			keys = append(keys, k)
		}
		if len(keys) == 0 {
			return nil, errors.New(errors.ErrCodeSchema, "layer %q is empty", name)
		}
		layers = append(layers, Layer{Name: name, Keys: keys})
	}
	return layers, nil
}
