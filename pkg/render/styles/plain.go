package styles

import (
	"bytes"
	"fmt"
	"strings"
)

// Plain is the default style: flat rounded rectangles with centered
// labels, hold labels in small type near the bottom edge, and small
// tinted squares for combo annotations.
type Plain struct{}

// RenderDefs writes the embedded stylesheet.
func (Plain) RenderDefs(buf *bytes.Buffer, t Theme) {
	fmt.Fprintf(buf, "<style>%s</style>\n", t.CSS())
}

// RenderKey draws the key shape and its labels. Multi-word tap labels
// stack vertically around the key center; the hold label sits just
// above the bottom edge.
func (Plain) RenderKey(buf *bytes.Buffer, t Theme, k KeyBox) {
	class := "key"
	if k.Held {
		class = "key held"
	}
	drawRect(buf, t, k.X, k.Y, k.W, k.H, class)

	cx := k.X + k.W/2
	cy := k.Y + k.H/2

	words := strings.Fields(k.Tap)
	y := cy - float64(len(words)-1)*t.LineSpacing/2
	for _, word := range words {
		drawText(buf, cx, y, word, false, false)
		y += t.LineSpacing
	}

	if k.Hold != "" {
		holdY := k.Y + k.H + t.InnerPadY - t.LineSpacing/2
		drawText(buf, cx, holdY, k.Hold, true, false)
	}
}

// RenderCombo draws a half-size tinted square centered on the anchor
// with the combo label inside.
func (Plain) RenderCombo(buf *bytes.Buffer, t Theme, c ComboBox) {
	w, h := t.KeyWidth/2, t.KeyHeight/2
	drawRect(buf, t, c.X-w/2, c.Y-h/2, w, h, "combo")
	drawText(buf, c.X, c.Y, c.Label, true, false)
}

// RenderCaption draws the bold layer name above the block, anchored on
// the block's left edge.
func (Plain) RenderCaption(buf *bytes.Buffer, t Theme, name string) {
	drawText(buf, 0, -t.KeyHeight/2, name+":", false, true)
}

func drawRect(buf *bytes.Buffer, t Theme, x, y, w, h float64, class string) {
	fmt.Fprintf(buf, `<rect rx="%s" ry="%s" x="%s" y="%s" width="%s" height="%s" class="%s" />`+"\n",
		FormatFloat(t.KeyRx), FormatFloat(t.KeyRy),
		FormatFloat(x), FormatFloat(y), FormatFloat(w), FormatFloat(h), class)
}

func drawText(buf *bytes.Buffer, x, y float64, text string, small, bold bool) {
	fmt.Fprintf(buf, `<text text-anchor="middle" dominant-baseline="middle" x="%s" y="%s"`,
		FormatFloat(x), FormatFloat(y))
	if small {
		buf.WriteString(` font-size="80%"`)
	}
	if bold {
		buf.WriteString(` font-weight="bold"`)
	}
	fmt.Fprintf(buf, ">%s</text>\n", EscapeXML(text))
}
