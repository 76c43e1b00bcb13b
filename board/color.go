package board

// RGB is an indicator color
type RGB struct {
	R, G, B uint8
}

// Indicator colors used by the game
var (
	Off     = RGB{0, 0, 0}
	Red     = RGB{255, 0, 0}
	Green   = RGB{0, 255, 0}
	Blue    = RGB{0, 0, 255}
	White   = RGB{255, 255, 255}
	Magenta = RGB{255, 0, 255}
	Yellow  = RGB{255, 255, 0}
	// Amber is the dimmed yellow used by the card probe
	Amber = RGB{100, 100, 0}
)

// Set pushes c to an indicator
func (c RGB) Set(led Indicator) {
	led.SetRGB(c.R, c.G, c.B)
}

// HSVToRGB converts hue 0-359, saturation and value 0-255 to RGB with integer math
func HSVToRGB(h, s, v int) RGB {
	h %= 360
	if h < 0 {
		h += 360
	}
	i := h / 60
	f := h % 60
	p := v * (255 - s) / 255
	q := v * (255 - s*f/60) / 255
	t := v * (255 - s*(60-f)/60) / 255

	switch i {
	case 0:
		return RGB{uint8(v), uint8(t), uint8(p)}
	case 1:
		return RGB{uint8(q), uint8(v), uint8(p)}
	case 2:
		return RGB{uint8(p), uint8(v), uint8(t)}
	case 3:
		return RGB{uint8(p), uint8(q), uint8(v)}
	case 4:
		return RGB{uint8(t), uint8(p), uint8(v)}
	default:
		return RGB{uint8(v), uint8(p), uint8(q)}
	}
}
