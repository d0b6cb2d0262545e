package audio

import (
	"time"

	"github.com/gopxl/beep"
)

type note struct {
	freq float64
	d    time.Duration
}

func melody(rate beep.SampleRate, wave Wave, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, NewFade(NewTone(n.freq, n.d, wave, rate), n.d, 5*time.Millisecond, n.d/3, rate))
	}

	return beep.Seq(parts...)
}

// RotateSound is a short square blip.
func RotateSound(rate beep.SampleRate) beep.Streamer {
	return volume(melody(rate, WaveSquare, note{880, 40 * time.Millisecond}), 0.2)
}

// LineClearSound rises one step per cleared line.
func LineClearSound(rate beep.SampleRate, lines int) beep.Streamer {
	notes := []note{{523.25, 60 * time.Millisecond}}
	steps := []float64{659.25, 783.99, 1046.5}
	for i := 0; i < lines-1 && i < len(steps); i++ {
		notes = append(notes, note{steps[i], 60 * time.Millisecond})
	}

	return volume(melody(rate, WaveTriangle, notes...), 0.35)
}

// GameOverSound is a falling arpeggio.
func GameOverSound(rate beep.SampleRate) beep.Streamer {
	return volume(melody(rate, WaveTriangle,
		note{392, 180 * time.Millisecond},
		note{311.13, 180 * time.Millisecond},
		note{261.63, 180 * time.Millisecond},
		note{196, 400 * time.Millisecond},
	), 0.4)
}

// musicLoop repeats a four bar bass line forever.
type musicLoop struct {
	rate  beep.SampleRate
	notes []note
	cur   beep.Streamer
	idx   int
}

var bassLine = []note{
	{110, 300 * time.Millisecond}, {164.81, 300 * time.Millisecond},
	{130.81, 300 * time.Millisecond}, {146.83, 300 * time.Millisecond},
	{110, 300 * time.Millisecond}, {98, 300 * time.Millisecond},
	{123.47, 300 * time.Millisecond}, {82.41, 300 * time.Millisecond},
}

func Music(rate beep.SampleRate) beep.Streamer {
	return volume(&musicLoop{rate: rate, notes: bassLine}, 0.12)
}

func (m *musicLoop) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		if m.cur == nil {
			nt := m.notes[m.idx%len(m.notes)]
			m.cur = NewFade(NewTone(nt.freq, nt.d, WaveSine, m.rate), nt.d, 10*time.Millisecond, nt.d/2, m.rate)
			m.idx++
		}

		k, more := m.cur.Stream(samples[n:])
		n += k
		if !more || k == 0 {
			m.cur = nil
		}
	}

	return n, true
}

func (m *musicLoop) Err() error { return nil }
