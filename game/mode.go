package game

import "github.com/lixenwraith/segmole/board"

// Mode is the game mode picked at the menu
type Mode uint8

const (
	ModeSolo Mode = iota + 1
	ModeDuel
	ModeDebugDualInput
)

func (m Mode) String() string {
	switch m {
	case ModeSolo:
		return "solo"
	case ModeDuel:
		return "duel"
	case ModeDebugDualInput:
		return "debug-dual-input"
	default:
		return "none"
	}
}

// Banner is the 4-character text shown when the mode starts
func (m Mode) Banner() string {
	switch m {
	case ModeSolo:
		return "SOLO"
	case ModeDuel:
		return "MULT"
	case ModeDebugDualInput:
		return "DUAL"
	default:
		return ""
	}
}

// NeedsDualKeypad reports whether the mode reads two keypads
func (m Mode) NeedsDualKeypad() bool {
	return m == ModeDuel || m == ModeDebugDualInput
}

// ModeForKey maps menu keys '1'-'3' to modes, other keys select nothing
func ModeForKey(k board.Key) (Mode, bool) {
	switch k {
	case '1':
		return ModeSolo, true
	case '2':
		return ModeDuel, true
	case '3':
		return ModeDebugDualInput, true
	default:
		return 0, false
	}
}
