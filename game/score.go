package game

import (
	"errors"
	"fmt"
)

// Score bounds
const (
	ScoreMin = 0
	ScoreMax = 100
)

// ErrInvalidTransition is returned when an event does not apply to the current state
var ErrInvalidTransition = errors.New("invalid transition")

// Score is a value clamped to [ScoreMin, ScoreMax]
type Score int

// NewScore clamps n into range
func NewScore(n int) Score {
	return Score(0).Add(n)
}

// Add applies delta and clamps the result
func (s Score) Add(delta int) Score {
	n := int(s) + delta
	if n < ScoreMin {
		return ScoreMin
	}
	if n > ScoreMax {
		return ScoreMax
	}
	return Score(n)
}

// Int returns the plain value
func (s Score) Int() int {
	return int(s)
}

// AtBound reports whether the score sits on either limit
func (s Score) AtBound() bool {
	return s == ScoreMin || s == ScoreMax
}

// Event drives the round state machines
type Event uint8

const (
	EventRoundCleared Event = iota
	EventNextRound
	EventDepleted
	EventDecided
)

func (e Event) String() string {
	switch e {
	case EventRoundCleared:
		return "round-cleared"
	case EventNextRound:
		return "next-round"
	case EventDepleted:
		return "depleted"
	case EventDecided:
		return "decided"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}
