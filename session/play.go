package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/lixenwraith/segmole/audio"
	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/card"
	"github.com/lixenwraith/segmole/challenge"
	"github.com/lixenwraith/segmole/game"
	"github.com/lixenwraith/segmole/segment"
)

// PlaySolo runs a solo session until the score is depleted and returns the rounds cleared
// Cancellation is checked between ticks
func (r *Runner) PlaySolo(ctx context.Context) (int, error) {
	return r.playSolo(ctx, r.log)
}

func (r *Runner) playSolo(ctx context.Context, log *zap.Logger) (int, error) {
	mode := game.ModeSolo.String()
	s := game.NewSolo(r.generate(challenge.Solo), game.WithAbsentCardPenalty(r.absentPenalty))
	log.Debug("round started", zap.Int("round", 1), zap.Any("targets", s.Challenge().Targets))

	for s.State() != game.SoloGameOver {
		if err := ctx.Err(); err != nil {
			return s.RoundsCompleted(), err
		}

		c := s.Challenge()
		r.show(segment.RenderChallenge(c))
		if c.AuxFlag == 1 {
			r.board.Fan.SetSpeed(100)
		} else {
			r.board.Fan.SetSpeed(0)
		}
		r.board.Curtain.SetPosition(s.Score().Int())

		in := game.SoloInput{Key: r.board.Keys.ReadKey()}
		if c.AuxPending {
			in.Card = r.matcher.Match(c.AuxFlag)
		}
		out := s.Step(in)
		r.recordSolo(mode, out)

		out.Indicator().Set(r.board.LED)
		if out.Miss {
			r.show(segment.RenderString(MissText))
			r.sleep(missFlash)
		}
		r.sleep(r.tick)
		board.Off.Set(r.board.LED)

		if out.RoundCleared {
			log.Info("round cleared", zap.Int("rounds", s.RoundsCompleted()), zap.Int("score", s.Score().Int()))
			if err := s.NextRound(r.generate(challenge.Solo)); err != nil {
				return s.RoundsCompleted(), err
			}
		}
	}
	r.board.Fan.SetSpeed(0)
	r.board.Curtain.SetPosition(0)
	return s.RoundsCompleted(), nil
}

func (r *Runner) recordSolo(mode string, out game.SoloOutcome) {
	switch {
	case out.Hit:
		r.metrics.Hit(mode, game.P1.String())
		r.sound.Play(audio.CueHit)
	case out.Miss:
		r.metrics.Miss(mode, game.P1.String())
		r.sound.Play(audio.CueMiss)
	}
	if out.Card != card.None {
		r.metrics.CardVerdict(out.Card.String())
		if out.Card == card.Matched {
			r.sound.Play(audio.CueCard)
		}
	}
	if out.RoundCleared {
		r.metrics.RoundCleared(mode)
		r.sound.Play(audio.CueRound)
	}
	r.metrics.Score(mode, out.Score.Int())
}

// PlayDuel runs a two-player session until one side reaches a bound
func (r *Runner) PlayDuel(ctx context.Context) (game.Player, error) {
	if !r.hasDualKeypad() {
		return game.NoPlayer, ErrNoDualKeypad
	}
	return r.playDuel(ctx, r.log)
}

func (r *Runner) playDuel(ctx context.Context, log *zap.Logger) (game.Player, error) {
	mode := game.ModeDuel.String()
	r.sleep(duelLeadIn)

	d := game.NewDuel(r.generate(challenge.Duel))
	for d.State() != game.DuelFinished {
		if err := ctx.Err(); err != nil {
			return game.NoPlayer, err
		}

		c := d.Challenge()
		r.show(segment.RenderChallenge(c))
		r.board.Fan.SetSpeed(0)
		r.board.Curtain.SetPosition(d.Score().Int())

		var in game.DuelInput
		in.P1, in.P2 = r.readDuelKeys(d.PollOrder())
		out := d.Step(in)
		r.recordDuel(mode, out)

		out.Indicator().Set(r.board.LED)
		r.sleep(r.tick)
		board.Off.Set(r.board.LED)

		if out.RoundCleared {
			log.Info("round cleared", zap.Int("round", d.Round()), zap.Int("score", d.Score().Int()))
			if err := d.NextRound(r.generate(challenge.Duel)); err != nil {
				return game.NoPlayer, err
			}
		}
	}
	r.board.Curtain.SetPosition(d.Score().Int())
	return d.Winner(), nil
}

// readDuelKeys reads both keypads, the first player in order is sampled first
func (r *Runner) readDuelKeys(order [2]game.Player) (board.Key, board.Key) {
	if o, ok := r.board.Duel.(board.OrderedDualKeypad); ok {
		return o.ReadKeysOrdered(order[0] == game.P1)
	}
	return r.board.Duel.ReadKeys()
}

func (r *Runner) recordDuel(mode string, out game.DuelOutcome) {
	for _, p := range out.Order {
		switch out.Claim(p) {
		case game.ClaimHit:
			r.metrics.Hit(mode, p.String())
			r.sound.Play(audio.CueHit)
		case game.ClaimMiss:
			r.metrics.Miss(mode, p.String())
			r.sound.Play(audio.CueMiss)
		}
	}
	if out.RoundCleared {
		r.metrics.RoundCleared(mode)
		r.sound.Play(audio.CueRound)
	}
	r.metrics.Score(mode, out.Score.Int())
}

// DebugDualInput echoes each keypad on the display until ctx is cancelled
func (r *Runner) DebugDualInput(ctx context.Context) error {
	if !r.hasDualKeypad() {
		return ErrNoDualKeypad
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		p1, p2 := r.board.Duel.ReadKeys()
		if p1 != board.KeyNone {
			board.Green.Set(r.board.LED)
			r.show(segment.RenderString(string(rune(p1))))
		}
		if p2 != board.KeyNone {
			board.Blue.Set(r.board.LED)
			r.show(segment.RenderString(string(rune(p2))))
		}
		r.sleep(r.tick)
	}
}

// ProbeCards shows the id of the card on the reader, a held key selects the second half
// Green is card 0, blue card 1, amber anything else
func (r *Runner) ProbeCards(ctx context.Context) error {
	r.show(segment.RenderString(ProbeText))
	r.sleep(probeIntro)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		half := 0
		if r.board.Keys.ReadKey() != board.KeyNone {
			half = 1
		}

		id, index, present := r.matcher.Identify()
		switch {
		case !present:
			board.Amber.Set(r.board.LED)
		case index == 0:
			board.RGB{G: 100}.Set(r.board.LED)
		case index == 1:
			board.RGB{B: 100}.Set(r.board.LED)
		default:
			board.Amber.Set(r.board.LED)
		}
		if present {
			r.show(segment.RenderString(id.Half(half)))
			r.log.Debug("card probed", zap.Stringer("id", id), zap.Int("index", index))
		}
		r.sleep(pollInterval)
	}
}
