package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Cue identifies a game sound
type Cue int

const (
	CueHit Cue = iota
	CueMiss
	CueCard
	CueRound
	CueWin
	CueLose
)

func (c Cue) String() string {
	switch c {
	case CueHit:
		return "hit"
	case CueMiss:
		return "miss"
	case CueCard:
		return "card"
	case CueRound:
		return "round"
	case CueWin:
		return "win"
	case CueLose:
		return "lose"
	default:
		return "unknown"
	}
}

const (
	hitDuration   = 60 * time.Millisecond
	missDuration  = 150 * time.Millisecond
	noteDuration  = 80 * time.Millisecond
	fanfareNote   = 120 * time.Millisecond
	attack        = 5 * time.Millisecond
	release       = 40 * time.Millisecond
	defaultVolume = 0.5
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite oscillator of the given wave shape
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if rest := e.totalSamples - e.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf so zero volume maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// CreateHitSound is a short A5 ping
func CreateHitSound(rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, 880)
	if err != nil {
		return tone(880, hitDuration, WaveSine, rate)
	}
	return NewEnvelope(beep.Take(rate.N(hitDuration), sine), hitDuration, attack, release, rate)
}

// CreateMissSound is a low saw buzz
func CreateMissSound(rate beep.SampleRate) beep.Streamer {
	return tone(100, missDuration, WaveSaw, rate)
}

// CreateCardSound is a two-note square chime
func CreateCardSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(987.77, noteDuration, WaveSquare, rate),
		tone(1318.51, noteDuration*2, WaveSquare, rate),
	)
}

// CreateRoundSound is a rising three-note arpeggio
func CreateRoundSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(523.25, noteDuration, WaveSine, rate),
		tone(659.25, noteDuration, WaveSine, rate),
		tone(783.99, noteDuration, WaveSine, rate),
	)
}

// CreateWinSound is a major fanfare ending on the octave
func CreateWinSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(523.25, fanfareNote, WaveSquare, rate),
		tone(659.25, fanfareNote, WaveSquare, rate),
		tone(783.99, fanfareNote, WaveSquare, rate),
		tone(1046.50, fanfareNote*3, WaveSquare, rate),
	)
}

// CreateLoseSound is a falling noise burst over a low tone
func CreateLoseSound(rate beep.SampleRate) beep.Streamer {
	d := fanfareNote * 4
	return beep.Mix(
		newVolume(tone(0, d, WaveNoise, rate), 0.3),
		newVolume(beep.Seq(
			tone(196, fanfareNote*2, WaveSaw, rate),
			tone(130.81, fanfareNote*2, WaveSaw, rate),
		), 0.7),
	)
}

// SoundFor returns the streamer for cue at volume, or nil for an unknown cue
func SoundFor(cue Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueHit:
		s = CreateHitSound(rate)
	case CueMiss:
		s = CreateMissSound(rate)
	case CueCard:
		s = CreateCardSound(rate)
	case CueRound:
		s = CreateRoundSound(rate)
	case CueWin:
		s = CreateWinSound(rate)
	case CueLose:
		s = CreateLoseSound(rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}
