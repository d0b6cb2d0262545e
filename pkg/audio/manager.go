package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

// SoundManager plays effects and the background tune through the speaker.
// Every method is a no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	enabled     bool
	initialized bool
}

func NewSoundManager(enabled bool) *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		enabled: enabled,
	}
}

// Initialize opens the audio device and starts the background tune, paused
// when sound is disabled.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	sm.music = &beep.Ctrl{Streamer: Music(SampleRate), Paused: !sm.enabled}
	sm.mixer.Add(sm.music)
	speaker.Play(sm.mixer)
	sm.initialized = true

	return nil
}

func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.enabled
}

// SetEnabled mutes or unmutes effects and pauses or resumes the tune.
func (sm *SoundManager) SetEnabled(on bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.enabled = on
	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.music.Paused = !on
	speaker.Unlock()
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.enabled {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func (sm *SoundManager) PlayRotate() {
	sm.play(RotateSound(SampleRate))
}

func (sm *SoundManager) PlayLineClear(lines int) {
	sm.play(LineClearSound(SampleRate, lines))
}

func (sm *SoundManager) PlayGameOver() {
	sm.play(GameOverSound(SampleRate))
}

// Cleanup silences everything. The speaker itself stays open.
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
