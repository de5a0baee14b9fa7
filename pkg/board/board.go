// Package board defines the physical keyboard layout schema and computes
// absolute key geometry from it.
//
// A layout document describes the board shape declaratively: rows of
// key-width markers, an optional split configuration, and per-half thumb
// clusters. [Parse] validates the document and [Build] turns it into a
// [Plan] with one positioned rectangle per key. Position indices follow
// the ZMK convention: 0-based, left-to-right then top-to-bottom across
// the whole board, both halves included.
package board

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/keydraw/keydraw/pkg/errors"
)

// DefaultGap is the inter-half gap in key units for split layouts that
// do not configure one.
const DefaultGap = 0.5

// Half identifies which side of a split board a key belongs to.
// Non-split boards place every key on the left half.
type Half int

const (
	LeftHalf Half = iota
	RightHalf
)

// String returns "left" or "right".
func (h Half) String() string {
	if h == RightHalf {
		return "right"
	}
	return "left"
}

// Cell is one entry of a marker row: either a key-width marker or a gap
// spacer. Gaps contribute horizontal offset but no key.
type Cell struct {
	Gap   bool
	Width float64 // key units
}

// Row is an ordered sequence of cells describing one physical row
// (one half of it, for split layouts).
type Row []Cell

// Thumbs holds the per-half thumb cluster key counts. A count of zero
// disables that cluster.
type Thumbs struct {
	Left  int `yaml:"left"`
	Right int `yaml:"right"`
}

// Layout is a validated physical layout.
type Layout struct {
	Name    string
	Split   bool
	Gap     float64 // key units between halves, split only
	Columns int     // declared row span in units, 0 when derived from rows
	Rows    []Row
	Thumbs  Thumbs
}

// document is the raw YAML shape of a layout file. Rows and thumbs need
// node-level decoding because both accept scalar and structured forms.
type document struct {
	Name    string    `yaml:"name"`
	Split   bool      `yaml:"split"`
	Gap     *float64  `yaml:"gap"`
	Columns int       `yaml:"columns"`
	Rows    yaml.Node `yaml:"rows"`
	Thumbs  yaml.Node `yaml:"thumbs"`
}

// Parse decodes and validates a physical layout document.
func Parse(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchema, err, "parse layout document")
	}

	l := &Layout{
		Name:    doc.Name,
		Split:   doc.Split,
		Columns: doc.Columns,
	}

	if doc.Gap != nil {
		if !doc.Split {
			return nil, errors.New(errors.ErrCodeGeometry, "gap is only valid for split layouts")
		}
		l.Gap = *doc.Gap
	} else if doc.Split {
		l.Gap = DefaultGap
	}

	rows, err := decodeRows(&doc.Rows, doc.Columns)
	if err != nil {
		return nil, err
	}
	l.Rows = rows

	thumbs, err := decodeThumbs(&doc.Thumbs)
	if err != nil {
		return nil, err
	}
	l.Thumbs = thumbs

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// decodeRows accepts either a row count (uniform grid of 1u keys, which
// requires columns) or an explicit list of marker rows.
func decodeRows(n *yaml.Node, columns int) ([]Row, error) {
	if n.Kind == 0 {
		return nil, errors.New(errors.ErrCodeSchema, "rows is required")
	}

	if n.Kind == yaml.ScalarNode {
		var count int
		if err := n.Decode(&count); err != nil {
			return nil, errors.Wrap(errors.ErrCodeSchema, err, "rows must be a count or a list of rows")
		}
		if count < 1 {
			return nil, errors.New(errors.ErrCodeGeometry, "rows must be at least 1, got %d", count)
		}
		if columns < 1 {
			return nil, errors.New(errors.ErrCodeGeometry, "columns is required when rows is a count")
		}
		rows := make([]Row, count)
		for r := range rows {
			cells := make(Row, columns)
			for c := range cells {
				cells[c] = Cell{Width: 1}
			}
			rows[r] = cells
		}
		return rows, nil
	}

	if n.Kind != yaml.SequenceNode {
		return nil, errors.New(errors.ErrCodeSchema, "rows must be a count or a list of rows")
	}

	rows := make([]Row, 0, len(n.Content))
	for r, rowNode := range n.Content {
		if rowNode.Kind != yaml.SequenceNode {
			return nil, errors.New(errors.ErrCodeSchema, "row %d must be a list of width markers", r)
		}
		row := make(Row, 0, len(rowNode.Content))
		for c, cellNode := range rowNode.Content {
			cell, err := decodeCell(cellNode, r, c)
			if err != nil {
				return nil, err
			}
			row = append(row, cell)
		}
		rows = append(rows, mergeRuns(row))
	}
	return rows, nil
}

// mergeRuns collapses runs of consecutive identical non-gap markers into
// a single cell of the combined width. Marker rows only; the grid form
// keeps one cell per key.
func mergeRuns(row Row) Row {
	merged := make(Row, 0, len(row))
	for i := 0; i < len(row); {
		c := row[i]
		if c.Gap {
			merged = append(merged, c)
			i++
			continue
		}
		j := i
		for j+1 < len(row) && !row[j+1].Gap && row[j+1].Width == c.Width {
			j++
		}
		merged = append(merged, Cell{Width: c.Width * float64(j-i+1)})
		i = j + 1
	}
	return merged
}

// decodeCell turns one row entry into a Cell: null means a 1u gap spacer,
// a positive number is a key-width marker.
func decodeCell(n *yaml.Node, r, c int) (Cell, error) {
	if n.Tag == "!!null" {
		return Cell{Gap: true, Width: 1}, nil
	}
	var w float64
	if err := n.Decode(&w); err != nil {
		return Cell{}, errors.New(errors.ErrCodeSchema, "row %d cell %d: width marker must be a number or null", r, c)
	}
	if w <= 0 {
		return Cell{}, errors.New(errors.ErrCodeSchema, "row %d cell %d: width marker must be positive, got %v", r, c, w)
	}
	return Cell{Width: w}, nil
}

// decodeThumbs accepts a scalar count (both halves) or a {left, right}
// mapping. A missing node disables both clusters.
func decodeThumbs(n *yaml.Node) (Thumbs, error) {
	if n.Kind == 0 {
		return Thumbs{}, nil
	}
	if n.Kind == yaml.ScalarNode {
		var count int
		if err := n.Decode(&count); err != nil {
			return Thumbs{}, errors.Wrap(errors.ErrCodeSchema, err, "thumbs must be a count or a {left, right} mapping")
		}
		return Thumbs{Left: count, Right: count}, nil
	}
	if n.Kind != yaml.MappingNode {
		return Thumbs{}, errors.New(errors.ErrCodeSchema, "thumbs must be a count or a {left, right} mapping")
	}
	var t Thumbs
	if err := n.Decode(&t); err != nil {
		return Thumbs{}, errors.Wrap(errors.ErrCodeSchema, err, "decode thumbs")
	}
	return t, nil
}

// Validate checks the layout shape for internal consistency.
// Build calls this, so layouts constructed in code are checked too.
func (l *Layout) Validate() error {
	if len(l.Rows) == 0 {
		return errors.New(errors.ErrCodeGeometry, "layout has no rows")
	}
	for r, row := range l.Rows {
		if len(row) == 0 {
			return errors.New(errors.ErrCodeGeometry, "row %d is empty", r)
		}
		if l.Columns > 0 {
			if span := row.Units(); !almostEqual(span, float64(l.Columns)) {
				return errors.New(errors.ErrCodeGeometry,
					"row %d spans %v units, declared columns is %d", r, span, l.Columns)
			}
		}
	}

	if l.Thumbs.Left < 0 || l.Thumbs.Right < 0 {
		return errors.New(errors.ErrCodeGeometry, "thumb counts cannot be negative")
	}
	if !l.Split {
		if l.Thumbs.Left != 0 || l.Thumbs.Right != 0 {
			return errors.New(errors.ErrCodeGeometry, "thumb clusters are only valid for split layouts")
		}
		if l.Gap != 0 {
			return errors.New(errors.ErrCodeGeometry, "gap is only valid for split layouts")
		}
	}
	if l.Gap < 0 {
		return errors.New(errors.ErrCodeGeometry, "gap cannot be negative, got %v", l.Gap)
	}

	block := l.BlockUnits()
	if float64(l.Thumbs.Left) > block {
		return errors.New(errors.ErrCodeGeometry,
			"left thumb count %d exceeds the half width of %v units", l.Thumbs.Left, block)
	}
	if float64(l.Thumbs.Right) > block {
		return errors.New(errors.ErrCodeGeometry,
			"right thumb count %d exceeds the half width of %v units", l.Thumbs.Right, block)
	}
	return nil
}

// Units returns the horizontal span of the row in key units, gaps included.
func (r Row) Units() float64 {
	var span float64
	for _, c := range r {
		span += c.Width
	}
	return span
}

// BlockUnits returns the width of one half (the whole board, when not
// split) in key units: the widest row span.
func (l *Layout) BlockUnits() float64 {
	var widest float64
	for _, row := range l.Rows {
		if span := row.Units(); span > widest {
			widest = span
		}
	}
	return widest
}

// KeyCount returns the number of keys the layout produces, split
// doubling and thumb clusters included.
func (l *Layout) KeyCount() int {
	perRow := 0
	for _, row := range l.Rows {
		perRow += row.keyCount()
	}
	if l.Split {
		return 2*perRow + l.Thumbs.Left + l.Thumbs.Right
	}
	return perRow
}

// keyCount returns the number of keys one walk of the row emits: one
// per non-gap cell. Marker runs are already merged by Parse.
func (r Row) keyCount() int {
	count := 0
	for _, c := range r {
		if !c.Gap {
			count++
		}
	}
	return count
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

// String returns a short human-readable summary of the layout shape.
func (l *Layout) String() string {
	kind := "non-split"
	if l.Split {
		kind = "split"
	}
	return fmt.Sprintf("%s layout, %d rows, %d keys", kind, len(l.Rows), l.KeyCount())
}
