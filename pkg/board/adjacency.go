package board

const eps = 1e-9

// Adjacent reports whether two keys share an edge in the computed
// layout: abutting horizontally within the same row, or vertically
// between neighboring rows with overlapping horizontal extent.
//
// The inter-half gap of a split board always breaks adjacency, even
// when it is configured as zero.
func Adjacent(a, b Key) bool {
	if a.Half != b.Half {
		return false
	}
	if a.Row == b.Row {
		return almostEqual(a.U+a.Units, b.U) || almostEqual(b.U+b.Units, a.U)
	}
	if dr := a.Row - b.Row; dr == 1 || dr == -1 {
		overlap := min(a.U+a.Units, b.U+b.Units) - max(a.U, b.U)
		return overlap > eps
	}
	return false
}

// Midpoint returns the anchor point between two key centers, used to
// place combo annotations.
func Midpoint(a, b Key) (x, y float64) {
	return (a.CenterX() + b.CenterX()) / 2, (a.CenterY() + b.CenterY()) / 2
}
