package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays game cues through a single speaker mixer
// Playback calls are no-ops until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      map[Cue]int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: defaultVolume,
		played: make(map[Cue]int),
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetVolume sets the linear cue volume, clamped to [0,1]
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = min(max(v, 0), 1)
}

// Play queues cue on the mixer
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := SoundFor(cue, sampleRate, sm.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[cue]++
}

// Played returns how many times cue was queued
func (sm *SoundManager) Played(cue Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[cue]
}

// Name identifies the sound manager as a service
func (sm *SoundManager) Name() string { return "audio" }

// Start initializes the speaker
func (sm *SoundManager) Start() error { return sm.Initialize() }

// Stop clears the mixer
func (sm *SoundManager) Stop() { sm.Cleanup() }
