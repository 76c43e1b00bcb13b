package segment

// Filler pads the front of marquee text
const Filler = '-'

var font = map[byte]Mask{
	' ':  0,
	'-':  SegG,
	'_':  SegD,
	'=':  SegG | SegD,
	'\'': SegB,
	'A':  SegA | SegB | SegC | SegE | SegF | SegG,
	'B':  SegC | SegD | SegE | SegF | SegG,
	'C':  SegA | SegD | SegE | SegF,
	'D':  SegB | SegC | SegD | SegE | SegG,
	'E':  SegA | SegD | SegE | SegF | SegG,
	'F':  SegA | SegE | SegF | SegG,
	'G':  SegA | SegC | SegD | SegE | SegF,
	'H':  SegB | SegC | SegE | SegF | SegG,
	'I':  SegE | SegF,
	'J':  SegB | SegC | SegD | SegE,
	'K':  SegB | SegC | SegE | SegF | SegG,
	'L':  SegD | SegE | SegF,
	'M':  SegA | SegC | SegE,
	'N':  SegA | SegB | SegC | SegE | SegF,
	'O':  SegA | SegB | SegC | SegD | SegE | SegF,
	'P':  SegA | SegB | SegE | SegF | SegG,
	'Q':  SegA | SegB | SegC | SegF | SegG,
	'R':  SegE | SegG,
	'S':  SegA | SegC | SegD | SegF | SegG,
	'T':  SegD | SegE | SegF | SegG,
	'U':  SegB | SegC | SegD | SegE | SegF,
	'V':  SegC | SegD | SegE,
	'W':  SegB | SegD | SegF,
	'X':  SegB | SegC | SegE | SegF | SegG,
	'Y':  SegB | SegC | SegD | SegF | SegG,
	'Z':  SegA | SegB | SegD | SegE | SegG,
	// lowercase forms that differ from the uppercase glyph
	'c': SegD | SegE | SegG,
	'h': SegC | SegE | SegF | SegG,
	'n': SegC | SegE | SegG,
	'o': SegC | SegD | SegE | SegG,
	'u': SegC | SegD | SegE,
}

// Glyph returns the mask for an ASCII character, unknown characters are blank
func Glyph(ch byte) Mask {
	if ch >= '0' && ch <= '9' {
		return Digits[ch-'0']
	}
	if m, ok := font[ch]; ok {
		return m
	}
	if ch >= 'a' && ch <= 'z' {
		return font[ch-'a'+'A']
	}
	return 0
}

// MarqueeLength is the scroll cycle length for s
func MarqueeLength(s string) int {
	return len(s) + Window
}

// RenderText renders the 4-cell marquee window of s at offset
// s is padded with Window filler characters at the front; offset wraps at MarqueeLength.
// A '.' right after a character is folded into that cell as the decimal point and the
// window reads one extra source character, so up to Window cells stay lit.
func RenderText(s string, offset int) Cells {
	n := MarqueeLength(s)
	offset %= n
	if offset < 0 {
		offset += n
	}

	padded := make([]byte, 0, n)
	for i := 0; i < Window; i++ {
		padded = append(padded, Filler)
	}
	padded = append(padded, s...)

	return fold(padded, offset, len(padded)-offset)
}

// RenderString renders static text left-aligned, folding dots, truncated to the display
func RenderString(s string) Cells {
	return fold([]byte(s), 0, len(s))
}

// fold fills cells from at most span source characters starting at start
func fold(src []byte, start, span int) Cells {
	at := func(i int) byte {
		if i < 0 || i >= len(src) {
			return 0
		}
		return src[i]
	}

	var cells Cells
	cell := 0
	for i := 0; i < span && cell < Window; i++ {
		ch := at(start + i)
		if ch == '.' {
			cells[cell] = SegDP
		} else {
			cells[cell] = Glyph(ch)
			if at(start+i+1) == '.' {
				cells[cell] |= SegDP
				i++
			}
		}
		cell++
	}
	return cells
}
