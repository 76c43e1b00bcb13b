// Package session drives the game loop over a board
package session

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/segmole/audio"
	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/card"
	"github.com/lixenwraith/segmole/challenge"
	"github.com/lixenwraith/segmole/game"
	"github.com/lixenwraith/segmole/metrics"
	"github.com/lixenwraith/segmole/segment"
)

// Timings of the station, the tick is configurable
const (
	DefaultTick    = 200 * time.Millisecond
	chaseFrame     = 60 * time.Millisecond
	marqueeFrame   = 200 * time.Millisecond
	pollsPerFrame  = 10
	pollInterval   = marqueeFrame / pollsPerFrame
	missFlash      = 50 * time.Millisecond
	pauseAfterKey  = time.Second
	bannerHold     = time.Second
	resultHold     = 2 * time.Second
	errorHold      = time.Second
	duelLeadIn     = time.Second
	probeIntro     = 500 * time.Millisecond
	hueFrameStep   = 30
	huePollStep    = 360 / pollsPerFrame
	idleSaturation = 255
	idleValue      = 128
)

// Display texts
const (
	WelcomeText = "Welcome-to-segmole"
	ChooseText  = "CHOOSE-MODE"
	MissText    = "00P5"
	ErrorText   = "ERR"
	ProbeText   = "nfc"
)

// ErrNoDualKeypad is returned when a two-player mode starts without two keypads
var ErrNoDualKeypad = errors.New("dual keypad not available")

// Sounder plays audio cues
type Sounder interface {
	Play(cue audio.Cue)
}

type silent struct{}

func (silent) Play(audio.Cue) {}

// Runner owns one station: its board, generator and the active engine
type Runner struct {
	board         board.Board
	gen           *challenge.Generator
	matcher       *card.Matcher
	tick          time.Duration
	absentPenalty bool
	log           *zap.Logger
	metrics       *metrics.Recorder
	sound         Sounder
}

// Option configures a Runner
type Option func(*Runner)

// WithTick sets the game tick, non-positive values keep the default
func WithTick(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.tick = d
		}
	}
}

// WithGenerator replaces the challenge generator
func WithGenerator(g *challenge.Generator) Option {
	return func(r *Runner) { r.gen = g }
}

// WithCards sets the card table the auxiliary target is matched against
func WithCards(t *card.Table) Option {
	return func(r *Runner) { r.matcher = card.NewMatcher(r.board.Cards, t) }
}

// WithAbsentCardPenalty charges a point per tick while no card is on an open card target
func WithAbsentCardPenalty(on bool) Option {
	return func(r *Runner) { r.absentPenalty = on }
}

// WithLogger sets the logger, nil keeps the no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMetrics records game events on m
func WithMetrics(m *metrics.Recorder) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithSound plays cues on s, nil keeps the runner silent
func WithSound(s Sounder) Option {
	return func(r *Runner) {
		if s != nil {
			r.sound = s
		}
	}
}

// New creates a runner for b
func New(b board.Board, opts ...Option) *Runner {
	if b.Clock == nil {
		b.Clock = board.RealClock{}
	}
	r := &Runner{
		board:   b,
		gen:     challenge.NewGenerator(),
		matcher: card.NewMatcher(b.Cards, nil),
		tick:    DefaultTick,
		log:     zap.NewNop(),
		sound:   silent{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loops welcome, mode selection and play until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	for {
		r.board.Reset()
		if err := r.chase(ctx); err != nil {
			return err
		}
		if err := r.welcome(ctx); err != nil {
			return err
		}
		r.sleep(pauseAfterKey)

		mode, err := r.SelectMode(ctx)
		if err != nil {
			return err
		}
		if err := r.play(ctx, mode); err != nil {
			if errors.Is(err, ErrNoDualKeypad) {
				r.log.Warn("mode needs two keypads", zap.Stringer("mode", mode))
				r.showError()
				continue
			}
			return err
		}
	}
}

func (r *Runner) play(ctx context.Context, mode game.Mode) error {
	if mode != game.ModeDebugDualInput {
		r.show(segment.RenderString(mode.Banner()))
		r.sleep(bannerHold)
	}
	if mode.NeedsDualKeypad() && !r.hasDualKeypad() {
		return ErrNoDualKeypad
	}

	id := uuid.New()
	log := r.log.With(zap.String("session", id.String()), zap.Stringer("mode", mode))
	log.Info("session started")
	r.metrics.SessionStarted(mode.String())

	switch mode {
	case game.ModeSolo:
		rounds, err := r.playSolo(ctx, log)
		if err != nil {
			return err
		}
		log.Info("solo finished", zap.Int("rounds", rounds))
		r.sound.Play(audio.CueLose)
		r.show(segment.RenderString(strconv.Itoa(rounds)))
		r.sleep(resultHold)

	case game.ModeDuel:
		winner, err := r.playDuel(ctx, log)
		if err != nil {
			return err
		}
		log.Info("duel finished", zap.Stringer("winner", winner))
		r.metrics.DuelWinner(winner.String())
		r.sound.Play(audio.CueWin)
		r.showWinner(winner)
		r.sleep(resultHold)

	case game.ModeDebugDualInput:
		return r.DebugDualInput(ctx)
	}
	return nil
}

func (r *Runner) hasDualKeypad() bool {
	return r.board.Duel != nil && r.board.Duel.Players() == 2
}

func (r *Runner) showWinner(p game.Player) {
	switch p {
	case game.P1:
		board.Green.Set(r.board.LED)
		r.show(segment.RenderString("P1"))
	case game.P2:
		board.Blue.Set(r.board.LED)
		r.show(segment.RenderString("P2"))
	}
}

func (r *Runner) showError() {
	r.show(segment.RenderString(ErrorText))
	board.Red.Set(r.board.LED)
	r.sleep(errorHold)
}

func (r *Runner) show(c segment.Cells) {
	r.board.Display.Push(c)
}

func (r *Runner) sleep(d time.Duration) {
	r.board.Clock.Sleep(d)
}

// entropy reads the sensor, replacing non-finite values with 0
func (r *Runner) entropy() (float64, float64) {
	if r.board.Sensor == nil {
		return 0, 0
	}
	temp, humi := r.board.Sensor.ReadEntropy()
	if !finite(temp) || !finite(humi) {
		r.log.Debug("sensor reading degenerate", zap.Float64("temp", temp), zap.Float64("humidity", humi))
		if !finite(temp) {
			temp = 0
		}
		if !finite(humi) {
			humi = 0
		}
	}
	return temp, humi
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (r *Runner) generate(v challenge.Variant) challenge.Challenge {
	temp, humi := r.entropy()
	c := r.gen.Generate(v, temp, humi)
	r.metrics.Redraws(r.gen.Redraws())
	if r.gen.Perturbed() {
		r.log.Debug("challenge perturbed", zap.Int("redraws", r.gen.Redraws()))
	}
	return c
}
