// Package audio plays short interaction cues: a chime for doors, clicks for
// picking up and dropping objects and a blip for wall buttons. Cues are
// synthesized unless a WAV file has been loaded for them.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue names one interaction sound.
type Cue int

const (
	CueDoor Cue = iota
	CuePickUp
	CueDrop
	CueButton
)

var cueNames = [...]string{"door", "pickup", "drop", "button"}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return fmt.Sprintf("Cue(%d)", int(c))
	}
	return cueNames[c]
}

// ParseCue returns the cue with the given name.
func ParseCue(name string) (Cue, bool) {
	for i, n := range cueNames {
		if n == name {
			return Cue(i), true
		}
	}
	return 0, false
}

// note is one tone in a synthesized cue.
type note struct {
	freq float64
	dur  time.Duration
}

var synth = map[Cue][]note{
	CueDoor:   {{660, 90 * time.Millisecond}, {880, 160 * time.Millisecond}},
	CuePickUp: {{1200, 40 * time.Millisecond}},
	CueDrop:   {{700, 45 * time.Millisecond}},
	CueButton: {{520, 60 * time.Millisecond}, {520, 60 * time.Millisecond}},
}

// Manager handles audio playback.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64 // 0.0 to 1.0
	mixer       *beep.Mixer
	loaded      map[Cue]*beep.Buffer
}

// New creates a new audio manager.
func New(volume float64) *Manager {
	return &Manager{
		sampleRate: DefaultSampleRate,
		volume:     clamp(volume, 0, 1),
		mixer:      &beep.Mixer{},
		loaded:     make(map[Cue]*beep.Buffer),
	}
}

// Init opens the output device.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops all playback.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		speaker.Clear()
		m.initialized = false
	}
}

// SetVolume sets the volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// LoadCue replaces the synthesized sound for c with WAV data.
func (m *Manager) LoadCue(c Cue, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode %s cue: %w", c, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	var s beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	buf.Append(s)

	m.mu.Lock()
	m.loaded[c] = buf
	m.mu.Unlock()
	return nil
}

// Play mixes c into the output. It does nothing before Init.
func (m *Manager) Play(c Cue) {
	m.mu.RLock()
	initialized, vol := m.initialized, m.volume
	buf := m.loaded[c]
	m.mu.RUnlock()

	if !initialized || vol <= 0 {
		return
	}
	s := m.stream(c, buf)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: volumeToDb(vol) / 6})
	speaker.Unlock()
}

func (m *Manager) stream(c Cue, buf *beep.Buffer) beep.Streamer {
	if buf != nil {
		return buf.Streamer(0, buf.Len())
	}
	notes, ok := synth[c]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = tone(m.sampleRate, n.freq, n.dur)
	}
	return beep.Seq(parts...)
}

// tone is a sine at freq with a fast attack and exponential decay, lasting
// exactly d.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	attack := sr.N(5 * time.Millisecond)
	step := 2 * math.Pi * freq / float64(sr)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for n < len(samples) && pos < total {
			env := math.Exp(-4 * float64(pos) / float64(total))
			if pos < attack {
				env *= float64(pos) / float64(attack)
			}
			v := 0.4 * env * math.Sin(step*float64(pos))
			samples[n] = [2]float64{v, v}
			n++
			pos++
		}
		return n, n > 0
	})
}

// volumeToDb converts a 0-1 volume to decibels: 1 is 0 dB, 0.5 about -6 dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
