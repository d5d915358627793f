package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound names understood by the player.
const (
	SoundClick  = "click"
	SoundSplash = "splash"
	SoundMiss   = "miss"
)

// wave selects an oscillator shape.
type wave int

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// tone is a finite oscillator. Its frequency slides linearly from freq to
// freq+slide over its duration.
type tone struct {
	freq, slide float64
	wave        wave
	rate        beep.SampleRate
	total, pos  int
	phase       float64
	rng         *rand.Rand
}

func newTone(freq, slide float64, d time.Duration, w wave, rate beep.SampleRate) *tone {
	return &tone{
		freq:  freq,
		slide: slide,
		wave:  w,
		rate:  rate,
		total: rate.N(d),
		rng:   rand.New(rand.NewSource(int64(freq) + 1)),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveNoise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		f := t.freq + t.slide*float64(t.pos)/float64(t.total)
		t.phase += f / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// decay fades a streamer out exponentially after a linear attack.
type decay struct {
	s       beep.Streamer
	attack  int
	falloff float64 // per-sample multiplier after the attack
	pos     int
	gain    float64
}

func newDecay(s beep.Streamer, attack, halfLife time.Duration, rate beep.SampleRate) *decay {
	return &decay{
		s:       s,
		attack:  rate.N(attack),
		falloff: math.Pow(0.5, 1/float64(max(rate.N(halfLife), 1))),
		gain:    1,
	}
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.s.Stream(samples)
	for i := 0; i < n; i++ {
		vol := d.gain
		if d.pos < d.attack {
			vol = float64(d.pos) / float64(d.attack)
		} else {
			d.gain *= d.falloff
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.s.Err() }

// volume scales a streamer by a linear factor; zero or less is silent.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// clickSound is a short bright tick for a caught droplet.
func clickSound(rate beep.SampleRate) beep.Streamer {
	const d = 40 * time.Millisecond
	return beep.Mix(
		volume(newDecay(newTone(1760, 0, d, waveSine, rate), 2*time.Millisecond, 8*time.Millisecond, rate), 0.6),
		volume(newDecay(newTone(3520, 0, d, waveSquare, rate), time.Millisecond, 4*time.Millisecond, rate), 0.15),
	)
}

// splashSound is a burst of noise with a falling undertone for a bounce.
func splashSound(rate beep.SampleRate) beep.Streamer {
	const d = 120 * time.Millisecond
	return beep.Mix(
		volume(newDecay(newTone(0, 0, d, waveNoise, rate), 3*time.Millisecond, 25*time.Millisecond, rate), 0.35),
		volume(newDecay(newTone(420, -240, d, waveSine, rate), 5*time.Millisecond, 40*time.Millisecond, rate), 0.4),
	)
}

// missSound is a low descending buzz for a droplet lost off the bottom.
func missSound(rate beep.SampleRate) beep.Streamer {
	const d = 220 * time.Millisecond
	return volume(newDecay(newTone(220, -110, d, waveSquare, rate), 5*time.Millisecond, 80*time.Millisecond, rate), 0.25)
}

// soundFor returns a fresh streamer for a sound name, or nil.
func soundFor(name string, rate beep.SampleRate) beep.Streamer {
	switch name {
	case SoundClick:
		return clickSound(rate)
	case SoundSplash:
		return splashSound(rate)
	case SoundMiss:
		return missSound(rate)
	default:
		return nil
	}
}
