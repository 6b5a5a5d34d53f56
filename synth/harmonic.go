// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth renders frequency / duration sequences into sampled
// waveforms by additive harmonic synthesis and mixes voices together.
package synth

import (
	"math"

	"github.com/emer/phrygian/domain"
)

// Rand is the random source for Randomize and Sweep. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Params are the additive synthesis settings shared by every note of a voice
type Params struct {
	SampleRate int     `def:"44100" desc:"samples per second"`
	Harmonics  int     `def:"600" desc:"number of partials including the fundamental -- 1 gives a pure sine"`
	Decay      float64 `def:"10" desc:"partial n has amplitude 1/n^Decay -- higher values give a darker tone"`
}

// Defaults sets the parameters used by the reference renders
func (p *Params) Defaults() {
	p.SampleRate = 44100
	p.Harmonics = 600
	p.Decay = 10
}

// Validate checks that the parameters can render a note
func (p *Params) Validate() error {
	switch {
	case p.SampleRate <= 0:
		return domain.Errorf(domain.InvalidParameter, "synth.Params", "sample rate %d must be > 0", p.SampleRate)
	case p.Harmonics < 1:
		return domain.Errorf(domain.InvalidParameter, "synth.Params", "harmonic count %d must be >= 1", p.Harmonics)
	case !(p.Decay > 0):
		return domain.Errorf(domain.InvalidParameter, "synth.Params", "decay factor %v must be > 0", p.Decay)
	}
	return nil
}

// Randomize replaces Harmonics with a draw from [3, 10] and then Decay with a draw from [0.1, 1.5)
func (p *Params) Randomize(rng Rand) {
	p.Harmonics = 3 + rng.Intn(8)
	p.Decay = 0.1 + 1.4*rng.Float64()
}

// amplitudes returns the partial weights, index 0 unused
func (p *Params) amplitudes() []float64 {
	amps := make([]float64, p.Harmonics+1)
	for n := 1; n <= p.Harmonics; n++ {
		amps[n] = 1 / math.Pow(float64(n), p.Decay)
	}
	return amps
}

// NumSamples is floor(sampleRate * dur)
func NumSamples(sampleRate int, dur float64) int {
	return int(math.Floor(float64(sampleRate) * dur))
}

// Note renders one note of freq Hz lasting dur seconds. It returns the
// sample times, evenly spaced over [0, dur), and the samples.
func Note(freq, dur float64, p Params) (t, wave []float64, err error) {
	if err = p.Validate(); err != nil {
		return nil, nil, err
	}
	if dur < 0 {
		return nil, nil, domain.Errorf(domain.InvalidParameter, "synth.Note", "duration %v must be >= 0", dur)
	}
	n := NumSamples(p.SampleRate, dur)
	t = make([]float64, n)
	wave = make([]float64, n)
	renderNote(t, wave, freq, dur, p.amplitudes())
	return t, wave, nil
}

// renderNote fills t and wave, which have equal length
func renderNote(t, wave []float64, freq, dur float64, amps []float64) {
	n := len(wave)
	if n == 0 {
		return
	}
	step := dur / float64(n)
	w := 2 * math.Pi * freq
	for i := range wave {
		ti := float64(i) * step
		t[i] = ti
		s := 0.0
		for h := 1; h < len(amps); h++ {
			s += amps[h] * math.Sin(w*float64(h)*ti)
		}
		wave[i] = s
	}
}

// Voice renders each (freq, dur) pair with Note and concatenates the
// segments. There is no cross-fade, so note boundaries are abrupt.
func Voice(freqs, durs []float64, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(freqs) != len(durs) {
		return nil, domain.Errorf(domain.LengthMismatch, "synth.Voice", "%d frequencies, %d durations", len(freqs), len(durs))
	}
	total := 0
	for i, d := range durs {
		if d < 0 {
			return nil, domain.Errorf(domain.InvalidParameter, "synth.Voice", "duration %d is %v", i, d)
		}
		total += NumSamples(p.SampleRate, d)
	}
	amps := p.amplitudes()
	out := make([]float64, total)
	var scratch []float64
	pos := 0
	for i, f := range freqs {
		n := NumSamples(p.SampleRate, durs[i])
		if cap(scratch) < n {
			scratch = make([]float64, n)
		}
		renderNote(scratch[:n], out[pos:pos+n], f, durs[i], amps)
		pos += n
	}
	return out, nil
}
