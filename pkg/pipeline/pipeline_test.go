package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/keydraw/keydraw/pkg/errors"
)

const testLayout = `
name: testboard
split: true
rows: 2
columns: 3
thumbs: 2
`

const testKeymap = `
layout: testboard
layers:
  base: [Q, W, E, R, T, Y, A, S, D, F, G, H, {t: SPC, h: NAV}, null, X, Z]
combos:
  - positions: [0, 1]
    key: ESC
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRunner() *Runner {
	return NewRunner(log.New(io.Discard))
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid json", []string{"json"}, false},
		{"valid multiple", []string{"svg", "json"}, false},
		{"invalid format", []string{"png"}, true},
		{"mixed valid invalid", []string{"svg", "bogus"}, true},
		{"empty slice", []string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		LayoutPath: writeFile(t, dir, "layout.yaml", testLayout),
		KeymapPath: writeFile(t, dir, "keymap.yaml", testKeymap),
		Formats:    []string{FormatSVG, FormatJSON},
	}

	result, err := testRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.KeyCount != 16 {
		t.Errorf("KeyCount = %d, want 16", result.Stats.KeyCount)
	}
	if result.Stats.LayerCount != 1 || result.Stats.ComboCount != 1 {
		t.Errorf("stats = %+v, want 1 layer and 1 combo", result.Stats)
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(result.Artifacts))
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing <svg root")
	}
	// 16 key rects plus one combo rect; the null entry draws a blank
	// key rather than shifting later labels.
	if got := strings.Count(string(result.Artifacts[FormatSVG]), "<rect"); got != 17 {
		t.Errorf("svg artifact has %d rects, want 17", got)
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"key_count": 16`) {
		t.Error("json artifact missing key_count")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		LayoutPath: writeFile(t, dir, "layout.yaml", testLayout),
		KeymapPath: writeFile(t, dir, "keymap.yaml", testKeymap),
	}

	a, err := testRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	b, err := testRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !bytes.Equal(a.Artifacts[FormatSVG], b.Artifacts[FormatSVG]) {
		t.Error("two runs over identical input must produce byte-identical SVG")
	}
}

func TestExecuteWithoutKeymap(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		LayoutPath: writeFile(t, dir, "layout.yaml", "rows: 2\ncolumns: 3\n"),
	}

	result, err := testRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Keymap != nil {
		t.Error("Keymap should be nil without a keymap path")
	}
	if got := strings.Count(string(result.Artifacts[FormatSVG]), "<rect"); got != 6 {
		t.Errorf("bare board has %d rects, want 6", got)
	}
}

func TestExecuteWithTheme(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		LayoutPath: writeFile(t, dir, "layout.yaml", "rows: 1\ncolumns: 1\n"),
		ThemePath:  writeFile(t, dir, "theme.toml", "key_fill = \"#abcdef\"\n"),
	}

	result, err := testRunner().Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), "#abcdef") {
		t.Error("theme override not reflected in output")
	}
}

func TestExecuteFailures(t *testing.T) {
	dir := t.TempDir()
	layoutPath := writeFile(t, dir, "layout.yaml", testLayout)

	tests := []struct {
		name     string
		opts     Options
		wantCode errors.Code
	}{
		{
			name:     "missing layout file",
			opts:     Options{LayoutPath: filepath.Join(dir, "nope.yaml")},
			wantCode: errors.ErrCodeFileNotFound,
		},
		{
			name: "layer shape mismatch",
			opts: Options{
				LayoutPath: layoutPath,
				KeymapPath: writeFile(t, dir, "short.yaml", "layers:\n  base: [A, B]\n"),
			},
			wantCode: errors.ErrCodeShapeMismatch,
		},
		{
			name: "non-adjacent combo",
			opts: Options{
				LayoutPath: layoutPath,
				KeymapPath: writeFile(t, dir, "badcombo.yaml", testKeymap+"  - positions: [0, 5]\n    key: NO\n"),
			},
			wantCode: errors.ErrCodeComboAdjacency,
		},
		{
			name: "layout name mismatch",
			opts: Options{
				LayoutPath: layoutPath,
				KeymapPath: writeFile(t, dir, "wrongname.yaml", strings.Replace(testKeymap, "testboard", "otherboard", 1)),
			},
			wantCode: errors.ErrCodeSchema,
		},
		{
			name: "invalid format",
			opts: Options{
				LayoutPath: layoutPath,
				Formats:    []string{"png"},
			},
			wantCode: errors.ErrCodeInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := testRunner().Execute(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("Execute() expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %q (%v), want %q", got, err, tt.wantCode)
			}
			if result != nil {
				t.Error("failed runs must not return partial results")
			}
		})
	}
}
