// Package audio plays the scene's sound effects through the system speaker.
// Sounds are synthesized on demand; nothing is loaded from disk.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/raincatch/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	bufferSize = 50 * time.Millisecond
)

// Player is a core.MutableSound backed by the speaker. Sounds are mixed, so
// overlapping effects play together.
type Player struct {
	mu     sync.RWMutex
	mixer  *beep.Mixer
	muted  bool
	ready  bool
	volume float64
	logger *log.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithVolume sets the master volume as a linear factor.
func WithVolume(v float64) Option {
	return func(p *Player) { p.volume = v }
}

// WithMuted starts the player muted.
func WithMuted(muted bool) Option {
	return func(p *Player) { p.muted = muted }
}

// NewPlayer creates a player that is silent until Init succeeds.
func NewPlayer(opts ...Option) *Player {
	p := &Player{
		mixer:  &beep.Mixer{},
		volume: 1,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init opens the speaker and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferSize)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Open returns an initialized Player, or a muted-capable no-op when the
// speaker is unavailable.
func Open(opts ...Option) core.MutableSound {
	p := NewPlayer(opts...)
	if err := p.Init(); err != nil {
		p.logger.Warn("audio disabled", "error", err)
		return &core.NopSound{}
	}
	return p
}

// PlaySound starts a named effect. Unknown names are ignored.
func (p *Player) PlaySound(name string) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.muted || !p.ready {
		return
	}
	s := soundFor(name, sampleRate)
	if s == nil {
		p.logger.Debug("unknown sound", "name", name)
		return
	}
	speaker.Lock()
	p.mixer.Add(volume(s, p.volume))
	speaker.Unlock()
}

// SetMuted mutes or unmutes. Muting cuts sounds already playing.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if muted && p.ready {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

// Muted reports whether the player is muted.
func (p *Player) Muted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.muted
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}
