package game

import (
	"fmt"

	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/challenge"
)

// Duel scoring, the score is player 2's advantage
const (
	DuelStartScore = 50
	DuelHitDelta   = 5
	DuelMissDelta  = 3
)

// Player identifies a duel participant
type Player uint8

const (
	NoPlayer Player = iota
	P1
	P2
)

func (p Player) String() string {
	switch p {
	case P1:
		return "p1"
	case P2:
		return "p2"
	default:
		return "none"
	}
}

// ResolveWinner resolves the duel winner from a score
// Only 0 and 100 end a duel under the transition rules; the <= 50 split also
// answers for any other value
func ResolveWinner(s Score) Player {
	if s <= DuelStartScore {
		return P1
	}
	return P2
}

// DuelState is the duel round state
type DuelState uint8

const (
	DuelPlaying DuelState = iota
	DuelRoundCleared
	DuelFinished
)

func (s DuelState) String() string {
	switch s {
	case DuelPlaying:
		return "playing"
	case DuelRoundCleared:
		return "round-cleared"
	case DuelFinished:
		return "finished"
	default:
		return fmt.Sprintf("duel(%d)", uint8(s))
	}
}

var duelTransitions = map[DuelState]map[Event]DuelState{
	DuelPlaying: {
		EventRoundCleared: DuelRoundCleared,
		EventDecided:      DuelFinished,
	},
	DuelRoundCleared: {
		EventNextRound: DuelPlaying,
	},
}

// DuelTransition looks up the successor of state under e
func DuelTransition(state DuelState, e Event) (DuelState, bool) {
	next, ok := duelTransitions[state][e]
	return next, ok
}

// Claim is what a player's key did in one tick
type Claim uint8

const (
	ClaimNone Claim = iota
	ClaimHit
	ClaimMiss
	// ClaimLate names a target the other player took earlier in the same tick
	ClaimLate
	ClaimIgnored
)

func (c Claim) String() string {
	switch c {
	case ClaimHit:
		return "hit"
	case ClaimMiss:
		return "miss"
	case ClaimLate:
		return "late"
	case ClaimIgnored:
		return "ignored"
	default:
		return "none"
	}
}

// DuelInput is one tick of both keypads
type DuelInput struct {
	P1, P2 board.Key
}

func (in DuelInput) key(p Player) board.Key {
	if p == P1 {
		return in.P1
	}
	return in.P2
}

// DuelOutcome reports what one tick did
type DuelOutcome struct {
	Order        [2]Player
	P1, P2       Claim
	Score        Score
	RoundCleared bool
	Finished     bool
	Winner       Player
}

// Claim returns the claim of player p
func (o DuelOutcome) Claim(p Player) Claim {
	if p == P1 {
		return o.P1
	}
	return o.P2
}

// Indicator picks the LED color for the tick
func (o DuelOutcome) Indicator() board.RGB {
	switch {
	case o.P1 == ClaimHit && o.P2 == ClaimHit:
		return board.White
	case o.P1 == ClaimHit:
		return board.Green
	case o.P2 == ClaimHit:
		return board.Blue
	case o.P1 == ClaimMiss && o.P2 == ClaimMiss:
		return board.Magenta
	case o.P1 == ClaimMiss:
		return board.Red
	case o.P2 == ClaimMiss:
		return board.Yellow
	default:
		return board.Off
	}
}

// Duel is the two-player tug-of-war scoring engine
type Duel struct {
	state     DuelState
	score     Score
	challenge challenge.Challenge
	round     int
}

// DuelOption configures a Duel engine
type DuelOption func(*Duel)

// WithDuelScore sets the starting score
func WithDuelScore(n int) DuelOption {
	return func(d *Duel) { d.score = NewScore(n) }
}

// WithRound sets the starting round number
func WithRound(n int) DuelOption {
	return func(d *Duel) { d.round = n }
}

// NewDuel starts a duel at round 1 on the first challenge
func NewDuel(first challenge.Challenge, opts ...DuelOption) *Duel {
	d := &Duel{
		state:     DuelPlaying,
		score:     DuelStartScore,
		challenge: first,
		round:     1,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.score.AtBound() {
		d.state = DuelFinished
	}
	return d
}

func (d *Duel) fire(e Event) error {
	next, ok := DuelTransition(d.state, e)
	if !ok {
		return fmt.Errorf("%w: %s in duel state %s", ErrInvalidTransition, e, d.state)
	}
	d.state = next
	return nil
}

// PollOrder returns the keypad sampling order for the current round
// Even rounds sample player 1 first, odd rounds player 2; evaluation order is fixed
func (d *Duel) PollOrder() [2]Player {
	if d.round%2 == 0 {
		return [2]Player{P1, P2}
	}
	return [2]Player{P2, P1}
}

func hitDelta(p Player) int {
	if p == P1 {
		return -DuelHitDelta
	}
	return DuelHitDelta
}

func missDelta(p Player) int {
	if p == P1 {
		return DuelMissDelta
	}
	return -DuelMissDelta
}

// Step applies both players' keys for one tick
// Player 1 is always evaluated first, so a target both players name goes to player 1.
// Each claim is clamped on its own and the bounds are checked once the tick is applied
func (d *Duel) Step(in DuelInput) DuelOutcome {
	out := DuelOutcome{Order: d.PollOrder(), Score: d.score}
	if d.state != DuelPlaying {
		out.Finished = d.state == DuelFinished
		if out.Finished {
			out.Winner = ResolveWinner(d.score)
		}
		return out
	}

	var taken [10]bool
	out.P1 = d.apply(P1, in.P1, &taken)
	out.P2 = d.apply(P2, in.P2, &taken)
	out.Score = d.score

	if d.score.AtBound() {
		_ = d.fire(EventDecided)
		out.Finished = true
		out.Winner = ResolveWinner(d.score)
		return out
	}
	if d.challenge.Done() {
		_ = d.fire(EventRoundCleared)
		out.RoundCleared = true
	}
	return out
}

// apply evaluates one player's key and adjusts the score
func (d *Duel) apply(p Player, k board.Key, taken *[10]bool) Claim {
	c := d.claim(k, taken)
	switch c {
	case ClaimHit:
		d.score = d.score.Add(hitDelta(p))
	case ClaimMiss:
		d.score = d.score.Add(missDelta(p))
	}
	return c
}

func (d *Duel) claim(k board.Key, taken *[10]bool) Claim {
	v, ok := k.Digit()
	if !ok {
		if k != board.KeyNone {
			return ClaimIgnored
		}
		return ClaimNone
	}
	if d.challenge.Clear(v) {
		taken[v] = true
		return ClaimHit
	}
	if taken[v] {
		return ClaimLate
	}
	return ClaimMiss
}

// NextRound installs the next challenge and advances the round counter
func (d *Duel) NextRound(c challenge.Challenge) error {
	if err := d.fire(EventNextRound); err != nil {
		return err
	}
	d.challenge = c
	d.round++
	return nil
}

// State returns the current state
func (d *Duel) State() DuelState { return d.state }

// Score returns the current score
func (d *Duel) Score() Score { return d.score }

// Round returns the current round number, starting at 1
func (d *Duel) Round() int { return d.round }

// Challenge returns a copy of the current challenge
func (d *Duel) Challenge() challenge.Challenge { return d.challenge }

// Winner returns the winner once the duel is finished
func (d *Duel) Winner() Player {
	if d.state != DuelFinished {
		return NoPlayer
	}
	return ResolveWinner(d.score)
}
