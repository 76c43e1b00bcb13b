package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the total sample count and peak amplitude
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if a := abs(buf[j][0]); a > peak {
				peak = a
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream did not terminate")
	return 0, 0
}

// TestOscillatorSine verifies sine wave generation
func TestOscillatorSine(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, 100*time.Millisecond, WaveSine, rate)

	samples := make([][2]float64, 100)
	n, ok := osc.Stream(samples)
	if !ok || n != 100 {
		t.Fatalf("expected 100 samples, got %d ok=%v", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 || samples[i][0] != samples[i][1] {
			t.Errorf("sample %d bad: %v", i, samples[i])
		}
	}
	if osc.Err() != nil {
		t.Errorf("unexpected error: %v", osc.Err())
	}
}

func TestOscillatorSquareAndSaw(t *testing.T) {
	rate := beep.SampleRate(44100)
	sq := NewOscillator(220.0, 50*time.Millisecond, WaveSquare, rate)
	samples := make([][2]float64, 50)
	n, _ := sq.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v != 1.0 && v != -1.0 {
			t.Fatalf("square sample %d = %f", i, v)
		}
	}

	saw := NewOscillator(220.0, 50*time.Millisecond, WaveSaw, rate)
	n, _ = saw.Stream(samples)
	for i := 0; i < n; i++ {
		if v := samples[i][0]; v < -1.0 || v > 1.0 {
			t.Fatalf("saw sample %d = %f", i, v)
		}
	}
}

// TestOscillatorDuration verifies oscillator respects duration
func TestOscillatorDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 10 * time.Millisecond
	expected := rate.N(duration)

	osc := NewOscillator(440.0, duration, WaveSine, rate)
	n, _ := osc.Stream(make([][2]float64, expected*2))
	if n != expected {
		t.Errorf("expected %d samples, got %d", expected, n)
	}

	n2, ok2 := osc.Stream(make([][2]float64, 10))
	if ok2 || n2 != 0 {
		t.Errorf("drained oscillator returned %d ok=%v", n2, ok2)
	}
}

// TestEnvelopeAttackPhase verifies attack ramp-up
func TestEnvelopeAttackPhase(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond

	osc := NewOscillator(100.0, duration, WaveSquare, rate)
	env := NewEnvelope(osc, duration, 50*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, rate.N(50*time.Millisecond))
	n, ok := env.Stream(samples)
	if !ok {
		t.Fatal("expected envelope to stream")
	}
	if first, last := abs(samples[0][0]), abs(samples[n-1][0]); first >= last {
		t.Errorf("attack should ramp up, first=%f last=%f", first, last)
	}
}

func TestEnvelopeTruncatesToDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	osc := NewOscillator(440.0, time.Second, WaveSine, rate)
	env := NewEnvelope(osc, 20*time.Millisecond, time.Millisecond, time.Millisecond, rate)

	if total, _ := drain(t, env); total != rate.N(20*time.Millisecond) {
		t.Errorf("envelope should stop at its own duration, got %d samples", total)
	}
}

func TestSoundForEveryCue(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, cue := range []Cue{CueHit, CueMiss, CueCard, CueRound, CueWin, CueLose} {
		s := SoundFor(cue, rate, 1.0)
		if s == nil {
			t.Errorf("%s: nil streamer", cue)
			continue
		}
		total, peak := drain(t, s)
		if total == 0 || peak == 0 {
			t.Errorf("%s: silent cue (%d samples, peak %f)", cue, total, peak)
		}
		if total > rate.N(2*time.Second) {
			t.Errorf("%s: cue too long, %d samples", cue, total)
		}
	}
	if SoundFor(Cue(99), rate, 1.0) != nil {
		t.Error("unknown cue should return nil")
	}
}

// TestNewVolumeZero verifies zero volume is silent rather than -Inf
func TestNewVolumeZero(t *testing.T) {
	rate := beep.SampleRate(44100)
	vol := newVolume(NewOscillator(440.0, 50*time.Millisecond, WaveSine, rate), 0.0)

	_, peak := drain(t, vol)
	if peak != 0 {
		t.Errorf("zero volume should be silent, peak %f", peak)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
