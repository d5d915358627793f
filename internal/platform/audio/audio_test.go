package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/raincatch/internal/core"
)

var _ core.MutableSound = (*Player)(nil)

// drain streams s to completion and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func TestSoundsAreFinite(t *testing.T) {
	tests := []struct {
		name    string
		maxSize time.Duration
	}{
		{SoundClick, 40 * time.Millisecond},
		{SoundSplash, 120 * time.Millisecond},
		{SoundMiss, 220 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := soundFor(tt.name, sampleRate)
			if s == nil {
				t.Fatal("soundFor() = nil")
			}
			n, peak := drain(t, s)
			// Mixed sounds may pad their last buffer with silence.
			if limit := sampleRate.N(tt.maxSize) + 512; n == 0 || n > limit {
				t.Errorf("samples = %d, want 1..%d", n, limit)
			}
			if peak == 0 || peak > 1 {
				t.Errorf("peak = %v, want within (0, 1]", peak)
			}
		})
	}
}

func TestUnknownSound(t *testing.T) {
	if s := soundFor("thunder", sampleRate); s != nil {
		t.Error("unknown sound should be nil")
	}
}

func TestToneSlide(t *testing.T) {
	tn := newTone(100, 100, 10*time.Millisecond, waveSquare, sampleRate)
	n, _ := drain(t, tn)
	if n != sampleRate.N(10*time.Millisecond) {
		t.Errorf("samples = %d", n)
	}
	if tn.Err() != nil {
		t.Errorf("Err() = %v", tn.Err())
	}
}

func TestPlayerMuteWithoutSpeaker(t *testing.T) {
	p := NewPlayer(WithMuted(true))
	if !p.Muted() {
		t.Error("WithMuted(true) not applied")
	}

	p.SetMuted(false)
	if p.Muted() {
		t.Error("SetMuted(false) not applied")
	}

	// Not initialized: plays nothing, never touches the speaker.
	p.PlaySound(SoundClick)
	p.Close()
}
