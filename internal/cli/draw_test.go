package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const drawTestLayout = `
name: demo
rows: 2
columns: 3
`

const drawTestKeymap = `
layout: demo
layers:
  base: [Q, W, E, A, S, D]
`

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunDrawSingleFormat(t *testing.T) {
	dir := t.TempDir()
	layout := writeTestFile(t, dir, "layout.yaml", drawTestLayout)
	km := writeTestFile(t, dir, "keymap.yaml", drawTestKeymap)
	output := filepath.Join(dir, "out.svg")

	opts := drawOpts{output: output, formats: []string{"svg"}}
	if err := runDraw(context.Background(), layout, km, &opts); err != nil {
		t.Fatalf("runDraw() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output file missing <svg root")
	}
}

func TestRunDrawMultipleFormats(t *testing.T) {
	dir := t.TempDir()
	layout := writeTestFile(t, dir, "layout.yaml", drawTestLayout)
	km := writeTestFile(t, dir, "keymap.yaml", drawTestKeymap)

	opts := drawOpts{
		output:  filepath.Join(dir, "demo"),
		formats: []string{"svg", "json"},
	}
	if err := runDraw(context.Background(), layout, km, &opts); err != nil {
		t.Fatalf("runDraw() error = %v", err)
	}

	for _, ext := range []string{".svg", ".json"} {
		path := filepath.Join(dir, "demo"+ext)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s to exist: %v", path, err)
		}
	}
}

func TestRunDrawLayoutOnly(t *testing.T) {
	dir := t.TempDir()
	layout := writeTestFile(t, dir, "layout.yaml", drawTestLayout)
	output := filepath.Join(dir, "bare.svg")

	opts := drawOpts{output: output, formats: []string{"svg"}}
	if err := runDraw(context.Background(), layout, "", &opts); err != nil {
		t.Fatalf("runDraw() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "<rect"); got != 6 {
		t.Errorf("bare board has %d rects, want 6", got)
	}
}

func TestRunDrawInvalidInput(t *testing.T) {
	dir := t.TempDir()
	layout := writeTestFile(t, dir, "layout.yaml", drawTestLayout)
	km := writeTestFile(t, dir, "short.yaml", "layout: demo\nlayers:\n  base: [A]\n")
	output := filepath.Join(dir, "out.svg")

	opts := drawOpts{output: output, formats: []string{"svg"}}
	if err := runDraw(context.Background(), layout, km, &opts); err == nil {
		t.Fatal("runDraw() expected error for short layer")
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("failed runs must not create output files")
	}
}

func TestRunCheck(t *testing.T) {
	dir := t.TempDir()
	layout := writeTestFile(t, dir, "layout.yaml", drawTestLayout)
	km := writeTestFile(t, dir, "keymap.yaml", drawTestKeymap)

	if err := runCheck(context.Background(), layout, km, ""); err != nil {
		t.Errorf("runCheck() error = %v", err)
	}

	bad := writeTestFile(t, dir, "bad.yaml", "layout: demo\nlayers:\n  base: [A]\n")
	if err := runCheck(context.Background(), layout, bad, ""); err == nil {
		t.Error("runCheck() expected error for short layer")
	}
}

func TestRunPlan(t *testing.T) {
	dir := t.TempDir()
	layout := writeTestFile(t, dir, "layout.yaml", drawTestLayout)
	output := filepath.Join(dir, "plan.json")

	if err := runPlan(context.Background(), layout, output, ""); err != nil {
		t.Fatalf("runPlan() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"key_count": 6`) {
		t.Error("plan output missing key_count")
	}
}
