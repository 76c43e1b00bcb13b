// Package board defines the peripheral collaborators the game drives
// Implementations live elsewhere (console, sensor); the game only sees these interfaces
package board

import (
	"time"

	"github.com/lixenwraith/segmole/card"
	"github.com/lixenwraith/segmole/segment"
)

// Key is a raw keypad character, KeyNone when nothing is pressed
type Key byte

// KeyNone is the idle keypad reading
const KeyNone Key = 0

// Digit converts '1'..'9' to 1..9; any other key is not a target digit
func (k Key) Digit() (int, bool) {
	if k < '1' || k > '9' {
		return 0, false
	}
	return int(k - '0'), true
}

// Keypad is a single debounced keypad
type Keypad interface {
	ReadKey() Key
}

// DualKeypad reads two independent keypads
type DualKeypad interface {
	ReadKeys() (p1, p2 Key)
	// Players reports how many keypads were detected
	Players() int
}

// OrderedDualKeypad is a DualKeypad whose sampling order can be chosen per read
type OrderedDualKeypad interface {
	DualKeypad
	ReadKeysOrdered(p1First bool) (p1, p2 Key)
}

// Entropy yields two environmental readings used as seed material
type Entropy interface {
	ReadEntropy() (temp, humi float64)
}

// Display is the 4-cell seven-segment display
type Display interface {
	Push(cells segment.Cells)
}

// Indicator is the RGB LED
type Indicator interface {
	SetRGB(r, g, b uint8)
}

// Fan is the fan actuator, speed in percent
type Fan interface {
	SetSpeed(pct int)
}

// Curtain is the curtain actuator, position in percent
type Curtain interface {
	SetPosition(pct int)
}

// Clock provides cooperative delays
type Clock interface {
	Sleep(d time.Duration)
}

// Board bundles every collaborator of one station
type Board struct {
	Display Display
	LED     Indicator
	Fan     Fan
	Curtain Curtain
	Keys    Keypad
	Duel    DualKeypad
	Sensor  Entropy
	Cards   card.Reader
	Clock   Clock
}

// Reset puts every actuator in its idle state
func (b *Board) Reset() {
	b.Display.Push(segment.Blank)
	b.LED.SetRGB(0, 0, 0)
	b.Fan.SetSpeed(0)
	b.Curtain.SetPosition(100)
}

// RealClock sleeps on the wall clock
type RealClock struct{}

// Sleep blocks for d
func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
