package audio

import (
	"testing"
)

// TestSoundManagerGracefulDegradation verifies cues are no-ops when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked without initialization: %v", r)
		}
	}()

	for _, cue := range []Cue{CueHit, CueMiss, CueCard, CueRound, CueWin, CueLose} {
		sm.Play(cue)
		if sm.Played(cue) != 0 {
			t.Errorf("%s counted without a speaker", cue)
		}
	}
	sm.Cleanup()
}

// TestSoundManagerInitialization may skip where no audio device exists
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	if err := sm.Initialize(); err != nil {
		t.Logf("sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("second initialization should be a no-op, got %v", err)
	}

	sm.Play(CueHit)
	if sm.Played(CueHit) != 1 {
		t.Errorf("hit not queued")
	}
	sm.Cleanup()

	sm.Play(CueHit)
	if sm.Played(CueHit) != 1 {
		t.Error("play after cleanup must be a no-op")
	}
}

func TestSoundManagerVolumeClamp(t *testing.T) {
	sm := NewSoundManager()
	sm.SetVolume(3)
	if sm.volume != 1 {
		t.Errorf("volume = %f, want 1", sm.volume)
	}
	sm.SetVolume(-1)
	if sm.volume != 0 {
		t.Errorf("volume = %f, want 0", sm.volume)
	}
}

func TestCueString(t *testing.T) {
	if CueWin.String() != "win" || Cue(42).String() != "unknown" {
		t.Error("cue names wrong")
	}
}
