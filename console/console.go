// Package console implements the game board on a terminal with tcell
package console

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/card"
	"github.com/lixenwraith/segmole/segment"
)

const (
	frameInterval = 16 * time.Millisecond
	eventBuffer   = 100
	keyQueueLimit = 16
)

// UnknownCard is inserted by the "unknown card" key
var UnknownCard = card.ID{0xDE, 0xAD, 0xBE, 0xEF}

// p2Keys maps the right-hand key block onto a phone-style 1..9 grid
var p2Keys = map[rune]board.Key{
	'm': '1', ',': '2', '.': '3',
	'j': '4', 'k': '5', 'l': '6',
	'u': '7', 'i': '8', 'o': '9',
}

// Console is a board.Board backend drawing onto a tcell.Screen
type Console struct {
	screen  tcell.Screen
	log     *zap.Logger
	players int
	cards   *card.Table

	quitOnce sync.Once
	quit     chan struct{}

	mu          sync.Mutex
	cells       segment.Cells
	rgb         board.RGB
	fan         int
	curtain     int
	p1, p2      []board.Key
	cardID      card.ID
	cardPresent bool
	dirty       bool
}

// Option configures a Console
type Option func(*Console)

// WithPlayers sets how many keypads the console reports
func WithPlayers(n int) Option {
	return func(c *Console) { c.players = n }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) { c.log = l }
}

// WithCards sets the table used to label inserted cards
func WithCards(t *card.Table) Option {
	return func(c *Console) { c.cards = t }
}

// New wraps an initialized screen
func New(screen tcell.Screen, opts ...Option) *Console {
	c := &Console{
		screen:  screen,
		log:     zap.NewNop(),
		players: 2,
		cards:   card.DefaultTable(),
		quit:    make(chan struct{}),
		curtain: 100,
		dirty:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Board returns a board.Board backed by this console and clock
func (c *Console) Board(clock board.Clock) board.Board {
	return board.Board{
		Display: c,
		LED:     c,
		Fan:     c,
		Curtain: c,
		Keys:    c,
		Duel:    c,
		Cards:   c,
		Clock:   clock,
	}
}

// Quit is closed when the user asks to leave
func (c *Console) Quit() <-chan struct{} {
	return c.quit
}

// Run pumps terminal events and redraws until ctx is done or the user quits
func (c *Console) Run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, eventBuffer)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.quit:
			return
		case ev := <-events:
			c.handleEvent(ev)
		case <-ticker.C:
			c.drawIfDirty()
		}
	}
}

func (c *Console) requestQuit() {
	c.quitOnce.Do(func() { close(c.quit) })
}

func (c *Console) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			c.log.Debug("quit requested")
			c.requestQuit()
			return
		}
		if ev.Key() == tcell.KeyRune {
			c.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		c.screen.Sync()
		c.markDirty()
	}
}

func (c *Console) handleRune(r rune) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case r >= '0' && r <= '9', r == '*', r == '#':
		c.p1 = push(c.p1, board.Key(r))
	case p2Keys[r] != board.KeyNone:
		c.p2 = push(c.p2, p2Keys[r])
	case r == 'c':
		c.insert(card.Card0, 0)
	case r == 'v':
		c.insert(card.Card1, 1)
	case r == 'b':
		c.cardID, c.cardPresent = UnknownCard, true
	case r == ' ':
		c.cardPresent = false
	default:
		return
	}
	c.dirty = true
}

// insert places the table's card at index, falling back to the kit default
func (c *Console) insert(fallback card.ID, index int) {
	c.cardID, c.cardPresent = fallback, true
	if id, ok := c.cards.ID(index); ok {
		c.cardID = id
	}
}

func push(q []board.Key, k board.Key) []board.Key {
	if len(q) >= keyQueueLimit {
		q = q[1:]
	}
	return append(q, k)
}

func pop(q []board.Key) ([]board.Key, board.Key) {
	if len(q) == 0 {
		return q, board.KeyNone
	}
	return q[1:], q[0]
}

// ReadKey pops one player-1 key
func (c *Console) ReadKey() board.Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	var k board.Key
	c.p1, k = pop(c.p1)
	return k
}

// ReadKeys pops one key per player, player 1 sampled first
func (c *Console) ReadKeys() (board.Key, board.Key) {
	return c.ReadKeysOrdered(true)
}

// ReadKeysOrdered pops one key per player in the requested order
// Each keypad is sampled under its own lock hold, so a key arriving between the two
// samples is only seen by the keypad sampled second
func (c *Console) ReadKeysOrdered(p1First bool) (board.Key, board.Key) {
	var k1, k2 board.Key
	if p1First {
		k1 = c.popPlayer(&c.p1)
		k2 = c.popPlayer(&c.p2)
	} else {
		k2 = c.popPlayer(&c.p2)
		k1 = c.popPlayer(&c.p1)
	}
	return k1, k2
}

func (c *Console) popPlayer(q *[]board.Key) board.Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	var k board.Key
	*q, k = pop(*q)
	return k
}

// Players reports the configured keypad count
func (c *Console) Players() int {
	return c.players
}

// ReadCard reports the card in the slot
func (c *Console) ReadCard() (card.ID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cardID, c.cardPresent
}

// Push shows cells on the display
func (c *Console) Push(cells segment.Cells) {
	c.mu.Lock()
	c.cells = cells
	c.dirty = true
	c.mu.Unlock()
}

// SetRGB sets the LED swatch color
func (c *Console) SetRGB(r, g, b uint8) {
	c.mu.Lock()
	c.rgb = board.RGB{R: r, G: g, B: b}
	c.dirty = true
	c.mu.Unlock()
}

// SetSpeed sets the fan bar, clamped to 0..100
func (c *Console) SetSpeed(pct int) {
	c.mu.Lock()
	c.fan = clampPct(pct)
	c.dirty = true
	c.mu.Unlock()
}

// SetPosition sets the curtain bar, clamped to 0..100
func (c *Console) SetPosition(pct int) {
	c.mu.Lock()
	c.curtain = clampPct(pct)
	c.dirty = true
	c.mu.Unlock()
}

func (c *Console) markDirty() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

func clampPct(p int) int {
	return min(max(p, 0), 100)
}

func (c *Console) drawIfDirty() {
	c.mu.Lock()
	dirty := c.dirty
	c.dirty = false
	c.mu.Unlock()
	if dirty {
		c.draw()
	}
}

// Layout of one big digit: 6 columns by 5 rows plus a DP column
const (
	originX    = 2
	originY    = 1
	digitPitch = 9
	panelY     = originY + 7
)

var (
	styleLit   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleUnlit = tcell.StyleDefault.Foreground(tcell.NewRGBColor(48, 16, 16))
	styleText  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim   = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type stroke struct {
	seg    segment.Mask
	x, y   int
	dx, dy int
	n      int
	glyph  rune
}

var strokes = []stroke{
	{segment.SegA, 1, 0, 1, 0, 4, '█'},
	{segment.SegB, 5, 1, 0, 1, 1, '█'},
	{segment.SegC, 5, 3, 0, 1, 1, '█'},
	{segment.SegD, 1, 4, 1, 0, 4, '█'},
	{segment.SegE, 0, 3, 0, 1, 1, '█'},
	{segment.SegF, 0, 1, 0, 1, 1, '█'},
	{segment.SegG, 1, 2, 1, 0, 4, '█'},
	{segment.SegDP, 7, 4, 0, 0, 1, '●'},
}

func (c *Console) draw() {
	c.mu.Lock()
	cells := c.cells
	rgb := c.rgb
	fan, curtain := c.fan, c.curtain
	id, present := c.cardID, c.cardPresent
	c.mu.Unlock()

	c.screen.Clear()

	for i, m := range cells {
		drawDigit(c.screen, originX+i*digitPitch, originY, m)
	}

	y := panelY
	drawText(c.screen, originX, y, styleText, "LED     ")
	led := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B)))
	drawText(c.screen, originX+8, y, led, "████")
	y++
	drawText(c.screen, originX, y, styleText, "FAN     "+bar(fan))
	y++
	drawText(c.screen, originX, y, styleText, "CURTAIN "+bar(curtain))
	y++
	drawText(c.screen, originX, y, styleText, "CARD    "+c.cardLabel(id, present))
	y += 2
	drawText(c.screen, originX, y, styleDim, "P1 1-9 0 * #   P2 m,. jkl uio   card c/v/b, space out   esc quit")

	c.screen.Show()
}

func (c *Console) cardLabel(id card.ID, present bool) string {
	if !present {
		return "-"
	}
	if i, ok := c.cards.Lookup(id); ok {
		return fmt.Sprintf("%s (card %d)", id, i)
	}
	return id.String() + " (unknown)"
}

func bar(pct int) string {
	const width = 20
	n := pct * width / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", n), strings.Repeat(".", width-n), pct)
}

func drawDigit(s tcell.Screen, x, y int, m segment.Mask) {
	for _, st := range strokes {
		style := styleUnlit
		if m.Has(st.seg) {
			style = styleLit
		}
		for i := 0; i < st.n; i++ {
			s.SetContent(x+st.x+i*st.dx, y+st.y+i*st.dy, st.glyph, nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
