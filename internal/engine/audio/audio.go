// Package audio plays footstep clips and a looping ambient track whose volume
// follows the listener's height.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/clamber/internal/config"
	"github.com/Faultbox/clamber/internal/logger"
	gmath "github.com/Faultbox/clamber/pkg/math"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned when playing before Init.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrUnknownClip is returned when playing a clip that was never loaded.
	ErrUnknownClip = errors.New("unknown clip")
)

// Manager handles audio playback for the game.
type Manager struct {
	mu  sync.RWMutex
	log *zap.Logger

	// State
	initialized bool
	muted       bool
	sampleRate  beep.SampleRate

	clips  map[string]*beep.Buffer
	played map[string]int

	// Ambient loop
	ambientCtrl   *beep.Ctrl
	ambientVolume *effects.Volume
	ambientName   string
	ambientLevel  float64 // current height-driven level, 0.0 to 1.0

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	ambientMax   float64
	minHeight    float32
	maxHeight    float32

	// SFX mixer for concurrent sound effects
	sfxMixer *beep.Mixer
}

// New creates a new audio manager from settings.
func New(cfg config.AudioConfig) *Manager {
	return &Manager{
		log:          logger.Named("audio"),
		muted:        cfg.Muted,
		sampleRate:   DefaultSampleRate,
		clips:        make(map[string]*beep.Buffer),
		played:       make(map[string]int),
		masterVolume: clamp(float64(cfg.MasterVolume), 0, 1),
		sfxVolLevel:  clamp(float64(cfg.SFXVolume), 0, 1),
		ambientMax:   clamp(float64(cfg.AmbientVolume), 0, 1),
		ambientLevel: clamp(float64(cfg.AmbientVolume), 0, 1),
		minHeight:    cfg.AmbientMinHeight,
		maxHeight:    cfg.AmbientMaxHeight,
		sfxMixer:     &beep.Mixer{},
	}
}

// Init initializes the speaker. A muted manager never opens a device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || m.muted {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	// Start SFX mixer
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopAmbientInternal()
	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// LoadClip decodes WAV data into memory under name, replacing any clip with
// the same name.
func (m *Manager) LoadClip(name string, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Resample if needed
	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
		format.SampleRate = m.sampleRate
	}
	buf := beep.NewBuffer(format)
	buf.Append(src)
	m.clips[name] = buf
	return nil
}

// LoadDir loads every *.wav file in dir, keyed by file name without the
// extension. It returns the number of clips loaded.
func (m *Manager) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read clip dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, fmt.Errorf("read clip: %w", err)
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := m.LoadClip(name, data); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Clips returns the loaded clip names in order.
func (m *Manager) Clips() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.clips))
	for name := range m.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateAmbientVolume()
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// AmbientLevel returns the current height-driven ambient level.
func (m *Manager) AmbientLevel() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ambientLevel
}

// AmbientVolumeAt returns the ambient level for a listener at height y: max at
// or below minHeight, silent at or above maxHeight, linear in between.
func AmbientVolumeAt(y, minHeight, maxHeight, max float32) float32 {
	t := gmath.InverseLerp(minHeight, maxHeight, y)
	return gmath.Lerp(max, 0, t)
}

// SetListenerHeight updates the ambient level for a listener at height y.
func (m *Manager) SetListenerHeight(y float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ambientLevel = float64(AmbientVolumeAt(y, m.minHeight, m.maxHeight, float32(m.ambientMax)))
	m.updateAmbientVolume()
}

func (m *Manager) updateAmbientVolume() {
	if m.ambientVolume == nil {
		return
	}
	vol := m.masterVolume * m.ambientLevel
	speaker.Lock()
	defer speaker.Unlock()
	if vol <= 0 {
		m.ambientVolume.Silent = true
	} else {
		m.ambientVolume.Silent = false
		m.ambientVolume.Volume = volumeExponent(vol)
	}
}

// volumeExponent converts a 0-1 volume to the base-2 exponent used by effects.Volume.
// vol=1 -> 0, vol=0.5 -> -1.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// PlayAmbient starts looping the named clip, replacing the current ambient track.
func (m *Manager) PlayAmbient(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}
	buf, ok := m.clips[name]
	if !ok {
		return fmt.Errorf("ambient %q: %w", name, ErrUnknownClip)
	}

	m.stopAmbientInternal()

	m.ambientCtrl = &beep.Ctrl{Streamer: &loopStreamer{src: buf.Streamer(0, buf.Len())}}
	m.ambientVolume = &effects.Volume{
		Streamer: m.ambientCtrl,
		Base:     2,
	}
	m.ambientName = name
	m.updateAmbientVolume()

	speaker.Play(m.ambientVolume)
	m.log.Debug("ambient started", zap.String("clip", name))
	return nil
}

// StopAmbient stops the ambient track.
func (m *Manager) StopAmbient() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopAmbientInternal()
}

func (m *Manager) stopAmbientInternal() {
	if m.ambientCtrl != nil {
		speaker.Lock()
		m.ambientCtrl.Paused = true
		m.ambientCtrl.Streamer = nil
		speaker.Unlock()
	}
	m.ambientCtrl = nil
	m.ambientVolume = nil
	m.ambientName = ""
}

// Ambient returns the name of the playing ambient clip, or "".
func (m *Manager) Ambient() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ambientName
}

// PlayClip plays a loaded clip once on the SFX mixer.
func (m *Manager) PlayClip(name string) error {
	m.mu.Lock()
	m.played[name]++
	initialized := m.initialized
	buf, ok := m.clips[name]
	sfxVol := m.masterVolume * m.sfxVolLevel
	m.mu.Unlock()

	if !initialized {
		return ErrNotInitialized
	}
	if !ok {
		return fmt.Errorf("clip %q: %w", name, ErrUnknownClip)
	}

	// Apply volume
	volStreamer := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeExponent(sfxVol),
		Silent:   sfxVol <= 0,
	}

	// Add to mixer (concurrent playback)
	speaker.Lock()
	m.sfxMixer.Add(volStreamer)
	speaker.Unlock()

	return nil
}

// PlaySound plays a clip and logs failures instead of returning them. A muted
// or uninitialized manager only counts the request.
func (m *Manager) PlaySound(name string) {
	err := m.PlayClip(name)
	if err != nil && !errors.Is(err, ErrNotInitialized) {
		m.log.Warn("play sound", zap.String("clip", name), zap.Error(err))
	}
}

// Played returns how many times each clip was requested.
func (m *Manager) Played() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(m.played))
	for k, v := range m.played {
		out[k] = v
	}
	return out
}

// loopStreamer restarts its source when it runs out.
type loopStreamer struct {
	src beep.StreamSeeker
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.src.Stream(samples[filled:])
		filled += n
		if !ok || n == 0 {
			// Reset to beginning
			if l.src.Len() == 0 {
				return filled, filled > 0
			}
			if err := l.src.Seek(0); err != nil {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.src.Err()
}
