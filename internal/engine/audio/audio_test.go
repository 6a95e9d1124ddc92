package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"

	"github.com/Faultbox/clamber/internal/config"
)

func TestVolumeExponent(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -0.001, 0.001}, // Full volume is unity gain
		{0.5, -1.001, -0.999},
		{0.25, -2.001, -1.999},
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		got := volumeExponent(tt.vol)
		if got < tt.min || got > tt.max {
			t.Errorf("volumeExponent(%f) = %f, want between %f and %f", tt.vol, got, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestAmbientVolumeAt(t *testing.T) {
	tests := []struct {
		y    float32
		want float32
	}{
		{-5, 1},
		{0, 1},
		{25, 0.5},
		{50, 0},
		{80, 0},
	}
	for _, tt := range tests {
		got := AmbientVolumeAt(tt.y, 0, 50, 1)
		if math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("AmbientVolumeAt(%v) = %v, want %v", tt.y, got, tt.want)
		}
	}

	// degenerate range stays at max
	if got := AmbientVolumeAt(10, 5, 5, 0.6); got != 0.6 {
		t.Errorf("equal heights = %v, want 0.6", got)
	}
}

func TestNewManager(t *testing.T) {
	m := New(config.Default().Audio)
	if m == nil {
		t.Fatal("New() returned nil")
	}

	if m.GetMasterVolume() != float64(float32(0.8)) {
		t.Errorf("default master volume = %f, want 0.8", m.GetMasterVolume())
	}
	if m.IsInitialized() {
		t.Error("manager should not start initialized")
	}
}

func TestSetVolume(t *testing.T) {
	m := New(config.AudioConfig{})

	m.SetMasterVolume(0.5)
	if m.GetMasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.GetMasterVolume())
	}

	// Test clamping
	m.SetMasterVolume(2.0)
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.GetMasterVolume())
	}

	m.SetSFXVolume(-1.0)
	if m.GetSFXVolume() != 0.0 {
		t.Errorf("sfx volume = %f, want 0.0 (clamped)", m.GetSFXVolume())
	}
}

func TestListenerHeight(t *testing.T) {
	m := New(config.AudioConfig{AmbientVolume: 0.8, AmbientMinHeight: 0, AmbientMaxHeight: 40})

	m.SetListenerHeight(10)
	if got := m.AmbientLevel(); math.Abs(got-0.6) > 1e-6 {
		t.Errorf("ambient level at 10 = %v, want 0.6", got)
	}
	m.SetListenerHeight(100)
	if got := m.AmbientLevel(); got != 0 {
		t.Errorf("ambient level at 100 = %v, want 0", got)
	}
}

func TestMutedInitIsNoop(t *testing.T) {
	m := New(config.AudioConfig{Muted: true})
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if m.IsInitialized() {
		t.Error("muted manager opened the speaker")
	}
	if err := m.PlayAmbient("ocean"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("PlayAmbient = %v, want ErrNotInitialized", err)
	}
	m.Close()
}

func TestPlayBeforeInit(t *testing.T) {
	m := New(config.AudioConfig{})

	if err := m.PlayClip("step1"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("PlayClip = %v, want ErrNotInitialized", err)
	}
	m.PlaySound("step1")
	m.PlaySound("step2")

	played := m.Played()
	if played["step1"] != 2 || played["step2"] != 1 {
		t.Errorf("played = %v", played)
	}
}

func writeSilentWAV(t *testing.T, path string, rate beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(rate.N(time.Second/10)), format); err != nil {
		t.Fatalf("encode wav: %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeSilentWAV(t, filepath.Join(dir, "step1.wav"), DefaultSampleRate)
	writeSilentWAV(t, filepath.Join(dir, "ocean.WAV"), 22050)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not audio"), 0644); err != nil {
		t.Fatal(err)
	}

	m := New(config.AudioConfig{})
	n, err := m.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d clips, want 2", n)
	}
	clips := m.Clips()
	if len(clips) != 2 || clips[0] != "ocean" || clips[1] != "step1" {
		t.Errorf("clips = %v, want [ocean step1]", clips)
	}

	// resampled clips keep their duration
	m.mu.RLock()
	ocean := m.clips["ocean"]
	m.mu.RUnlock()
	if ocean.Format().SampleRate != DefaultSampleRate {
		t.Errorf("ocean sample rate = %v, want %v", ocean.Format().SampleRate, DefaultSampleRate)
	}
	if want := DefaultSampleRate.N(time.Second / 10); abs(ocean.Len()-want) > want/50 {
		t.Errorf("ocean length = %d samples, want ~%d", ocean.Len(), want)
	}
}

func TestLoadClipInvalid(t *testing.T) {
	m := New(config.AudioConfig{})
	if err := m.LoadClip("bad", []byte("RIFF garbage")); err == nil {
		t.Error("expected error decoding invalid wav")
	}
	if len(m.Clips()) != 0 {
		t.Error("invalid clip was stored")
	}
}

func TestLoadDirMissing(t *testing.T) {
	m := New(config.AudioConfig{})
	if _, err := m.LoadDir(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing dir")
	}
}

func TestLoopStreamer(t *testing.T) {
	format := beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	buf.Append(beep.Silence(10))

	l := &loopStreamer{src: buf.Streamer(0, buf.Len())}
	samples := make([][2]float64, 35)
	n, ok := l.Stream(samples)
	if n != 35 || !ok {
		t.Errorf("Stream = %d, %v, want 35, true", n, ok)
	}
	if err := l.Err(); err != nil {
		t.Errorf("Err = %v", err)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
