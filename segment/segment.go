package segment

import (
	"strings"

	"github.com/lixenwraith/segmole/challenge"
)

// Mask is a set of lit segments for one display cell
type Mask uint8

// Segment bits, clockwise from the top bar, G is the middle bar
const (
	SegA Mask = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegDP
)

// Window is the number of physical cells
const Window = 4

// Cells is one frame for the 4-cell display, index 0 is the leftmost cell
type Cells [Window]Mask

// Blank is the all-off frame
var Blank Cells

// Digits is the standard seven-segment digit table
var Digits = [10]Mask{
	SegA | SegB | SegC | SegD | SegE | SegF,
	SegB | SegC,
	SegA | SegB | SegD | SegE | SegG,
	SegA | SegB | SegC | SegD | SegG,
	SegB | SegC | SegF | SegG,
	SegA | SegC | SegD | SegF | SegG,
	SegA | SegC | SegD | SegE | SegF | SegG,
	SegA | SegB | SegC,
	SegA | SegB | SegC | SegD | SegE | SegF | SegG,
	SegA | SegB | SegC | SegD | SegF | SegG,
}

// classSegments maps a target's segment class to its bar
var classSegments = [3]Mask{SegA, SegG, SegD}

// Has reports whether every segment in s is lit
func (m Mask) Has(s Mask) bool {
	return m&s == s
}

// String lists lit segments by name, "." for the decimal point
func (m Mask) String() string {
	if m == 0 {
		return "_"
	}
	var sb strings.Builder
	names := "ABCDEFG"
	for i := 0; i < 7; i++ {
		if m&(1<<i) != 0 {
			sb.WriteByte(names[i])
		}
	}
	if m&SegDP != 0 {
		sb.WriteByte('.')
	}
	return sb.String()
}

func (c Cells) String() string {
	parts := make([]string, Window)
	for i, m := range c {
		parts[i] = m.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// DigitGlyph returns the glyph for 0-9, blank outside the range
func DigitGlyph(n int) Mask {
	if n < 0 || n > 9 {
		return 0
	}
	return Digits[n]
}

// RenderChallenge encodes the challenge on the display
// Cell 0 shows the unsolved count with the decimal point as the status marker,
// cells 1-3 carry one bar per open target
func RenderChallenge(c challenge.Challenge) Cells {
	var cells Cells
	for _, v := range c.Targets {
		pos, class, ok := challenge.Decode(v)
		if !ok {
			continue
		}
		cells[pos] |= classSegments[class]
	}
	cells[0] = DigitGlyph(c.Unsolved) | SegDP
	return cells
}

// Single lights one segment mask on one cell
func Single(cell int, m Mask) Cells {
	var cells Cells
	if cell >= 0 && cell < Window {
		cells[cell] = m
	}
	return cells
}

// Frame is one step of a single-segment animation
type Frame struct {
	Cell int
	Seg  Mask
}

// ChaseFrames is the boot animation, one segment travelling around the display border
func ChaseFrames() []Frame {
	return []Frame{
		{0, SegA}, {1, SegA}, {2, SegA}, {3, SegA},
		{3, SegB}, {3, SegC}, {3, SegD},
		{2, SegD}, {1, SegD}, {0, SegD},
		{0, SegE}, {0, SegF},
	}
}
