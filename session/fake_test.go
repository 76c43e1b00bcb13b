package session

import (
	"context"
	"time"

	"github.com/lixenwraith/segmole/audio"
	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/card"
	"github.com/lixenwraith/segmole/segment"
)

type cardRead struct {
	id      card.ID
	present bool
}

// fakeBoard records every output and replays scripted input
type fakeBoard struct {
	frames  []segment.Cells
	leds    []board.RGB
	fan     []int
	curtain []int

	keys    []board.Key
	p1, p2  []board.Key
	players int
	order   []bool

	temp, humi float64
	cards      []cardRead
	heldCard   *cardRead

	slept   time.Duration
	sleeps  int
	onSleep func(d time.Duration)
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{players: 2, temp: 21.37, humi: 45.12}
}

func (f *fakeBoard) board() board.Board {
	return board.Board{
		Display: f,
		LED:     f,
		Fan:     f,
		Curtain: f,
		Keys:    f,
		Duel:    f,
		Sensor:  f,
		Cards:   f,
		Clock:   f,
	}
}

func popKey(q *[]board.Key) board.Key {
	if len(*q) == 0 {
		return board.KeyNone
	}
	k := (*q)[0]
	*q = (*q)[1:]
	return k
}

func (f *fakeBoard) Push(c segment.Cells) { f.frames = append(f.frames, c) }
func (f *fakeBoard) SetRGB(r, g, b uint8) { f.leds = append(f.leds, board.RGB{R: r, G: g, B: b}) }
func (f *fakeBoard) SetSpeed(pct int) { f.fan = append(f.fan, pct) }
func (f *fakeBoard) SetPosition(pct int) { f.curtain = append(f.curtain, pct) }
func (f *fakeBoard) ReadKey() board.Key { return popKey(&f.keys) }
func (f *fakeBoard) Players() int { return f.players }
func (f *fakeBoard) ReadEntropy() (float64, float64) {
	return f.temp, f.humi
}

func (f *fakeBoard) ReadKeys() (board.Key, board.Key) {
	return popKey(&f.p1), popKey(&f.p2)
}

func (f *fakeBoard) ReadKeysOrdered(p1First bool) (board.Key, board.Key) {
	f.order = append(f.order, p1First)
	return f.ReadKeys()
}

func (f *fakeBoard) ReadCard() (card.ID, bool) {
	if f.heldCard != nil {
		return f.heldCard.id, f.heldCard.present
	}
	if len(f.cards) == 0 {
		return card.ID{}, false
	}
	c := f.cards[0]
	f.cards = f.cards[1:]
	return c.id, c.present
}

func (f *fakeBoard) Sleep(d time.Duration) {
	f.slept += d
	f.sleeps++
	if f.onSleep != nil {
		f.onSleep(d)
	}
}

// cancelAfter cancels the returned context after n sleeps
func (f *fakeBoard) cancelAfter(n int) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	f.onSleep = func(time.Duration) {
		if f.sleeps >= n {
			cancel()
		}
	}
	return ctx
}

func (f *fakeBoard) countFrames(c segment.Cells) int {
	n := 0
	for _, fr := range f.frames {
		if fr == c {
			n++
		}
	}
	return n
}

func (f *fakeBoard) lastLED() board.RGB {
	if len(f.leds) == 0 {
		return board.Off
	}
	return f.leds[len(f.leds)-1]
}

type cueRecorder map[audio.Cue]int

func (c cueRecorder) Play(cue audio.Cue) { c[cue]++ }
