// Package audio plays short tones when the agent cycle enters notable states.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/felixgeelhaar/agentcycle"
)

const sampleRate = beep.SampleRate(44100)

// Cue describes the tone played on entering a state
type Cue struct {
	Freqs    []float64 // played back to back
	Duration time.Duration
	Square   bool
}

var cues = map[agentcycle.State]Cue{
	agentcycle.Movement: {Freqs: []float64{440}, Duration: 40 * time.Millisecond},
	agentcycle.Shooting: {Freqs: []float64{880, 660}, Duration: 60 * time.Millisecond, Square: true},
	agentcycle.Error:    {Freqs: []float64{110}, Duration: 150 * time.Millisecond, Square: true},
	agentcycle.Stopped:  {Freqs: []float64{523, 392, 262}, Duration: 120 * time.Millisecond},
}

// CueFor returns the cue for a target state, if it has one
func CueFor(s agentcycle.State) (Cue, bool) {
	c, ok := cues[s]
	return c, ok
}

// Streamer renders the cue at the given rate
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(c.Freqs))
	for _, f := range c.Freqs {
		parts = append(parts, newTone(f, c.Duration, c.Square, rate))
	}
	return beep.Seq(parts...)
}

// tone is a sine or square wave with a linear release over its last quarter
type tone struct {
	freq     float64
	phase    float64
	square   bool
	total    int
	release  int
	position int
	rate     beep.SampleRate
}

func newTone(freq float64, d time.Duration, square bool, rate beep.SampleRate) *tone {
	total := rate.N(d)
	return &tone{
		freq:    freq,
		square:  square,
		total:   total,
		release: total / 4,
		rate:    rate,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}

		var val float64
		if t.square {
			if t.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		} else {
			val = math.Sin(2 * math.Pi * t.phase)
		}

		vol := 0.3
		if remaining := t.total - t.position; t.release > 0 && remaining < t.release {
			vol *= float64(remaining) / float64(t.release)
		}

		samples[i][0] = val * vol
		samples[i][1] = val * vol

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// Player mixes cues onto an output
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	play   func(beep.Streamer)
	closer func()
}

// NewPlayer initializes the system speaker
func NewPlayer() (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	return &Player{
		rate: sampleRate,
		play: func(s beep.Streamer) {
			speaker.Lock()
			mixer.Add(s)
			speaker.Unlock()
		},
		closer: func() {
			speaker.Lock()
			mixer.Clear()
			speaker.Unlock()
			speaker.Close()
		},
	}, nil
}

// newPlayerWithSink routes cues to play instead of a speaker
func newPlayerWithSink(rate beep.SampleRate, play func(beep.Streamer)) *Player {
	return &Player{rate: rate, play: play}
}

// Hook returns a transition hook that plays the target state's cue
func (p *Player) Hook() agentcycle.Hook {
	return func(from, to agentcycle.State, at time.Time) {
		cue, ok := CueFor(to)
		if !ok {
			return
		}
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.play != nil {
			p.play(cue.Streamer(p.rate))
		}
	}
}

// Close stops playback and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closer != nil {
		p.closer()
	}
	p.play = nil
	p.closer = nil
}
