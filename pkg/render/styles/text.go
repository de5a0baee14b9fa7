package styles

import (
	"bytes"
	"encoding/xml"
	"strconv"
)

// EscapeXML escapes text for embedding in SVG markup.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// FormatFloat renders a coordinate with the shortest exact decimal
// representation. Output is deterministic, so identical geometry always
// serializes to identical markup.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
