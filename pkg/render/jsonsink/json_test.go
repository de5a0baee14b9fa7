package jsonsink

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/keydraw/keydraw/pkg/board"
	"github.com/keydraw/keydraw/pkg/keymap"
)

func buildPlan(t *testing.T, doc string) *board.Plan {
	t.Helper()
	l, err := board.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("board.Parse() error = %v", err)
	}
	p, err := board.Build(l, board.DefaultMetrics())
	if err != nil {
		t.Fatalf("board.Build() error = %v", err)
	}
	return p
}

func TestRenderGeometry(t *testing.T) {
	plan := buildPlan(t, "split: true\nrows: 2\ncolumns: 3\nthumbs: {left: 2, right: 3}\n")

	out, err := Render(plan)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded struct {
		KeyCount int `json:"key_count"`
		Keys     []struct {
			Index int    `json:"index"`
			Half  string `json:"half"`
			Thumb bool   `json:"thumb"`
		} `json:"keys"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.KeyCount != 17 {
		t.Errorf("key_count = %d, want 17", decoded.KeyCount)
	}
	if len(decoded.Keys) != decoded.KeyCount {
		t.Errorf("keys length %d != key_count %d", len(decoded.Keys), decoded.KeyCount)
	}
	for i, k := range decoded.Keys {
		if k.Index != i {
			t.Errorf("keys[%d].index = %d, want %d", i, k.Index, i)
		}
	}
	last := decoded.Keys[len(decoded.Keys)-1]
	if !last.Thumb || last.Half != "right" {
		t.Errorf("last key = %+v, want a right-half thumb key", last)
	}
}

func TestRenderWithKeymap(t *testing.T) {
	plan := buildPlan(t, "rows: 1\ncolumns: 2\n")
	km, err := keymap.Parse([]byte(`
layers:
  base: [{t: A, h: CTRL}, B]
combos:
  - positions: [0, 1]
    key: ESC
`))
	if err != nil {
		t.Fatalf("keymap.Parse() error = %v", err)
	}

	out, err := Render(plan, WithKeymap(km))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var decoded struct {
		Layers []struct {
			Name   string `json:"name"`
			Labels []struct {
				Tap  string `json:"tap"`
				Hold string `json:"hold"`
			} `json:"labels"`
		} `json:"layers"`
		Combos []struct {
			Positions []int   `json:"positions"`
			Label     string  `json:"label"`
			X         float64 `json:"x"`
		} `json:"combos"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(decoded.Layers) != 1 || decoded.Layers[0].Name != "base" {
		t.Fatalf("layers = %+v, want one layer named base", decoded.Layers)
	}
	if decoded.Layers[0].Labels[0].Hold != "CTRL" {
		t.Errorf("first label hold = %q, want CTRL", decoded.Layers[0].Labels[0].Hold)
	}
	if len(decoded.Combos) != 1 || decoded.Combos[0].Label != "ESC" {
		t.Fatalf("combos = %+v, want one ESC combo", decoded.Combos)
	}
	if decoded.Combos[0].X == 0 {
		t.Error("combo anchor should be computed from the key centers")
	}
}

func TestRenderDeterministic(t *testing.T) {
	plan := buildPlan(t, "rows: 2\ncolumns: 2\n")
	a, err := Render(plan)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	b, err := Render(plan)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("JSON export must be deterministic")
	}
}
