package game

import (
	"fmt"

	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/card"
	"github.com/lixenwraith/segmole/challenge"
)

// Solo scoring deltas
const (
	SoloStartScore  = 100
	SoloHitBonus    = 5
	SoloMissPenalty = -10
	SoloCardPenalty = -1
)

// SoloState is the solo round state
type SoloState uint8

const (
	SoloPlaying SoloState = iota
	// SoloRoundCleared is transient, the runner installs the next challenge
	SoloRoundCleared
	// SoloGameOver is terminal
	SoloGameOver
)

func (s SoloState) String() string {
	switch s {
	case SoloPlaying:
		return "playing"
	case SoloRoundCleared:
		return "round-cleared"
	case SoloGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("solo(%d)", uint8(s))
	}
}

var soloTransitions = map[SoloState]map[Event]SoloState{
	SoloPlaying: {
		EventRoundCleared: SoloRoundCleared,
		EventDepleted:     SoloGameOver,
	},
	SoloRoundCleared: {
		EventNextRound: SoloPlaying,
	},
}

// SoloTransition looks up the successor of state under e
func SoloTransition(state SoloState, e Event) (SoloState, bool) {
	next, ok := soloTransitions[state][e]
	return next, ok
}

// SoloInput is one tick of player input
type SoloInput struct {
	Key  board.Key
	Card card.Verdict
}

// SoloOutcome reports what one tick did
type SoloOutcome struct {
	Hit     bool
	Miss    bool
	Ignored bool
	// Card is the verdict that was applied, None when the aux requirement was not open
	Card         card.Verdict
	CardPenalty  bool
	Delta        int
	Score        Score
	RoundCleared bool
	GameOver     bool
}

// Success reports a positive signal for the tick
func (o SoloOutcome) Success() bool {
	return o.Hit || o.Card == card.Matched
}

// Failure reports a negative signal for the tick
func (o SoloOutcome) Failure() bool {
	return o.Miss || o.CardPenalty
}

// Indicator picks the LED color, the card verdict is evaluated last and wins
func (o SoloOutcome) Indicator() board.RGB {
	switch {
	case o.CardPenalty:
		return board.Red
	case o.Card == card.Matched:
		return board.Green
	case o.Miss:
		return board.Red
	case o.Hit:
		return board.Green
	default:
		return board.Off
	}
}

// Solo is the single-player scoring engine
type Solo struct {
	state         SoloState
	score         Score
	challenge     challenge.Challenge
	rounds        int
	absentPenalty bool
}

// SoloOption configures a Solo engine
type SoloOption func(*Solo)

// WithSoloScore sets the starting score
func WithSoloScore(n int) SoloOption {
	return func(s *Solo) { s.score = NewScore(n) }
}

// WithAbsentCardPenalty also penalizes ticks with no card while the aux requirement is open
func WithAbsentCardPenalty(on bool) SoloOption {
	return func(s *Solo) { s.absentPenalty = on }
}

// NewSolo starts a session on the first challenge
func NewSolo(first challenge.Challenge, opts ...SoloOption) *Solo {
	s := &Solo{
		state:     SoloPlaying,
		score:     SoloStartScore,
		challenge: first,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.score == ScoreMin {
		s.state = SoloGameOver
	}
	return s
}

func (s *Solo) fire(e Event) error {
	next, ok := SoloTransition(s.state, e)
	if !ok {
		return fmt.Errorf("%w: %s in solo state %s", ErrInvalidTransition, e, s.state)
	}
	s.state = next
	return nil
}

func (s *Solo) adjust(delta int, out *SoloOutcome) bool {
	before := s.score
	s.score = s.score.Add(delta)
	out.Delta += int(s.score - before)
	out.Score = s.score
	if s.score == ScoreMin {
		_ = s.fire(EventDepleted)
		out.GameOver = true
		return true
	}
	return false
}

// Step applies one tick of input
// Ticks outside SoloPlaying change nothing
func (s *Solo) Step(in SoloInput) SoloOutcome {
	out := SoloOutcome{Score: s.score}
	if s.state != SoloPlaying {
		out.GameOver = s.state == SoloGameOver
		return out
	}

	if d, ok := in.Key.Digit(); ok {
		if s.challenge.Clear(d) {
			out.Hit = true
			s.adjust(SoloHitBonus, &out)
		} else {
			out.Miss = true
			if s.adjust(SoloMissPenalty, &out) {
				return out
			}
		}
	} else if in.Key != board.KeyNone {
		out.Ignored = true
	}

	if s.challenge.AuxPending {
		out.Card = in.Card
		switch in.Card {
		case card.Matched:
			s.challenge.ClearAux()
		case card.Mismatched:
			out.CardPenalty = true
		case card.None:
			out.CardPenalty = s.absentPenalty
		}
		if out.CardPenalty && s.adjust(SoloCardPenalty, &out) {
			return out
		}
	}

	if s.challenge.Done() {
		s.rounds++
		_ = s.fire(EventRoundCleared)
		out.RoundCleared = true
	}
	return out
}

// NextRound installs the next challenge after a cleared round
func (s *Solo) NextRound(c challenge.Challenge) error {
	if err := s.fire(EventNextRound); err != nil {
		return err
	}
	s.challenge = c
	return nil
}

// State returns the current state
func (s *Solo) State() SoloState { return s.state }

// Score returns the current score
func (s *Solo) Score() Score { return s.score }

// Challenge returns a copy of the current challenge
func (s *Solo) Challenge() challenge.Challenge { return s.challenge }

// RoundsCompleted returns the number of cleared rounds
func (s *Solo) RoundsCompleted() int { return s.rounds }
