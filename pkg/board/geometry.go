package board

// Metrics scales the abstract key-unit grid into drawing units.
// A unit cell is the key shape plus its inner padding on each side.
type Metrics struct {
	KeyWidth  float64 // key shape width for a 1u key
	KeyHeight float64 // key shape height
	InnerPadX float64 // horizontal padding inside a unit cell
	InnerPadY float64 // vertical padding inside a unit cell
}

// DefaultMetrics returns the standard key dimensions.
func DefaultMetrics() Metrics {
	return Metrics{KeyWidth: 55, KeyHeight: 50, InnerPadX: 2, InnerPadY: 2}
}

// UnitWidth returns the full width of a 1u cell including padding.
func (m Metrics) UnitWidth() float64 { return m.KeyWidth + 2*m.InnerPadX }

// UnitHeight returns the full height of a unit cell including padding.
func (m Metrics) UnitHeight() float64 { return m.KeyHeight + 2*m.InnerPadY }

// Key is one positioned key of the computed plan.
//
// U and Units locate the key on the abstract unit grid (used for
// adjacency); X, Y, W, H are the drawing-unit rectangle of the key
// shape, inset by the metrics padding.
type Key struct {
	Index int  // ZMK-style position index
	Row   int  // abstract row; the thumb row is len(layout.Rows)
	Half  Half // side of a split board
	Thumb bool // part of a thumb cluster

	U     float64 // unit-grid start column
	Units float64 // width in key units

	X, Y, W, H float64
}

// CenterX returns the horizontal center of the key shape.
func (k Key) CenterX() float64 { return k.X + k.W/2 }

// CenterY returns the vertical center of the key shape.
func (k Key) CenterY() float64 { return k.Y + k.H/2 }

// Plan is the geometry of a full board: every key positioned, indices
// contiguous from 0 in walk order.
type Plan struct {
	Keys    []Key
	Rows    int     // abstract rows including the thumb row, if any
	Units   float64 // total board span in key units, inter-half gap included
	Width   float64 // board width in drawing units
	Height  float64 // board height in drawing units
	Metrics Metrics
}

// KeyCount returns the number of keys in the plan.
func (p *Plan) KeyCount() int { return len(p.Keys) }

// Build computes absolute geometry for every key of the layout.
// It is a pure function of its inputs; the layout is validated first.
func Build(l *Layout, m Metrics) (*Plan, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	unitW, unitH := m.UnitWidth(), m.UnitHeight()
	block := l.BlockUnits()
	rightOrigin := block + l.Gap

	totalUnits := block
	if l.Split {
		totalUnits = 2*block + l.Gap
	}

	p := &Plan{
		Rows:    len(l.Rows),
		Units:   totalUnits,
		Metrics: m,
	}
	if l.Thumbs.Left > 0 || l.Thumbs.Right > 0 {
		p.Rows++
	}
	p.Width = totalUnits * unitW
	p.Height = float64(p.Rows) * unitH

	idx := 0
	for r, row := range l.Rows {
		idx = emitRow(p, row, r, 0, LeftHalf, idx, m)
		if l.Split {
			idx = emitRow(p, row, r, rightOrigin, RightHalf, idx, m)
		}
	}

	thumbRow := len(l.Rows)
	if l.Thumbs.Left > 0 {
		start := (block - float64(l.Thumbs.Left)) / 2
		idx = emitThumbs(p, l.Thumbs.Left, thumbRow, start, LeftHalf, idx, m)
	}
	if l.Thumbs.Right > 0 {
		start := rightOrigin + (block-float64(l.Thumbs.Right))/2
		idx = emitThumbs(p, l.Thumbs.Right, thumbRow, start, RightHalf, idx, m)
	}

	return p, nil
}

// emitRow walks one row, placing one key per cell. Gaps advance the
// offset only.
func emitRow(p *Plan, row Row, r int, origin float64, half Half, idx int, m Metrics) int {
	u := origin
	for _, c := range row {
		if c.Gap {
			u += c.Width
			continue
		}
		p.Keys = append(p.Keys, placeKey(idx, r, half, false, u, c.Width, m))
		idx++
		u += c.Width
	}
	return idx
}

// emitThumbs places count 1u thumb keys starting at the given unit offset.
func emitThumbs(p *Plan, count, r int, start float64, half Half, idx int, m Metrics) int {
	for i := 0; i < count; i++ {
		p.Keys = append(p.Keys, placeKey(idx, r, half, true, start+float64(i), 1, m))
		idx++
	}
	return idx
}

func placeKey(idx, row int, half Half, thumb bool, u, units float64, m Metrics) Key {
	unitW, unitH := m.UnitWidth(), m.UnitHeight()
	return Key{
		Index: idx,
		Row:   row,
		Half:  half,
		Thumb: thumb,
		U:     u,
		Units: units,
		X:     u*unitW + m.InnerPadX,
		Y:     float64(row)*unitH + m.InnerPadY,
		W:     units*unitW - 2*m.InnerPadX,
		H:     m.KeyHeight,
	}
}
