// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emer/phrygian/domain"
)

func params(sr, harmonics int, decay float64) Params {
	return Params{SampleRate: sr, Harmonics: harmonics, Decay: decay}
}

func TestDefaults(t *testing.T) {
	var p Params
	p.Defaults()
	assert.Equal(t, Params{SampleRate: 44100, Harmonics: 600, Decay: 10}, p)
	assert.NoError(t, p.Validate())
}

func TestNotePureSine(t *testing.T) {
	tm, w, err := Note(440, 0.5, params(8000, 1, 1))
	require.NoError(t, err)
	require.Len(t, w, 4000)
	require.Len(t, tm, 4000)
	for _, i := range []int{0, 1, 17, 1999, 3999} {
		ti := float64(i) * 0.5 / 4000
		assert.InDelta(t, ti, tm[i], 1e-12)
		assert.InDelta(t, math.Sin(2*math.Pi*440*ti), w[i], 1e-9)
	}
}

func TestNoteFloorsSampleCount(t *testing.T) {
	tm, w, err := Note(100, 0.35, params(10, 1, 1))
	require.NoError(t, err)
	assert.Len(t, w, 3)
	assert.InDeltaSlice(t, []float64{0, 0.35 / 3, 0.7 / 3}, tm, 1e-12)

	_, w, err = Note(100, 0, params(10, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, w)
}

func TestNoteHarmonicSum(t *testing.T) {
	f, d := 3.0, 1.0
	tm, w, err := Note(f, d, params(100, 3, 1))
	require.NoError(t, err)
	for i := range w {
		x := 2 * math.Pi * f * tm[i]
		want := math.Sin(x) + math.Sin(2*x)/2 + math.Sin(3*x)/3
		assert.InDelta(t, want, w[i], 1e-9)
	}
}

func TestDecayAttenuatesPartials(t *testing.T) {
	p := params(100, 4, 2)
	amps := p.amplitudes()
	assert.InDeltaSlice(t, []float64{0, 1, 0.25, 1.0 / 9, 1.0 / 16}, amps, 1e-12)
}

func TestVoiceConcatenates(t *testing.T) {
	p := params(1000, 5, 1.5)
	freqs := []float64{110, 220, 330}
	durs := []float64{0.1, 0.0255, 0.2}
	v, err := Voice(freqs, durs, p)
	require.NoError(t, err)
	require.Len(t, v, 100+25+200)

	pos := 0
	for i := range freqs {
		_, seg, err := Note(freqs[i], durs[i], p)
		require.NoError(t, err)
		assert.InDeltaSlice(t, seg, v[pos:pos+len(seg)], 1e-12, "note %d", i)
		pos += len(seg)
	}
}

func TestVoiceErrors(t *testing.T) {
	p := params(1000, 2, 1)
	_, err := Voice([]float64{1, 2}, []float64{1}, p)
	assert.True(t, domain.IsKind(err, domain.LengthMismatch))

	_, err = Voice([]float64{1}, []float64{1}, params(0, 2, 1))
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))

	_, err = Voice([]float64{1}, []float64{1}, params(1000, 0, 1))
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))

	_, err = Voice([]float64{1}, []float64{1}, params(1000, 2, 0))
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))

	_, err = Voice([]float64{1}, []float64{-1}, p)
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))
}

func TestMixNormalizesPeak(t *testing.T) {
	a := []float64{0.5, -2, 1, 3}
	b := []float64{1, 1, 1}
	c := []float64{0, 0.5, -0.5, 0, 9}
	out, err := Mix(Layer{a, 0.9}, Layer{b, 0.6}, Layer{c, 0.8})
	require.NoError(t, err)
	require.Len(t, out, 3)

	raw := []float64{0.45 + 0.6, -1.8 + 0.6 + 0.4, 0.9 + 0.6 - 0.4}
	pk := math.Max(math.Abs(raw[0]), math.Max(math.Abs(raw[1]), math.Abs(raw[2])))
	for i := range raw {
		assert.InDelta(t, raw[i]*Headroom/pk, out[i], 1e-12)
	}
	assert.InDelta(t, Headroom, Peak(out), 1e-12)
}

func TestMixPeakBound(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for trial := 0; trial < 20; trial++ {
		var layers []Layer
		for v := 0; v < 3; v++ {
			w := make([]float64, 50+rng.Intn(50))
			for i := range w {
				w[i] = rng.NormFloat64() * 5
			}
			layers = append(layers, Layer{w, rng.Float64() + 0.1})
		}
		out, err := Mix(layers...)
		require.NoError(t, err)
		assert.LessOrEqual(t, Peak(out), Headroom+1e-12)
	}
}

func TestMixSilence(t *testing.T) {
	z := make([]float64, 10)
	out, err := Mix(Layer{z, 0.9}, Layer{z, 0.6})
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 10), out)

	out, err = Mix(Layer{nil, 1}, Layer{[]float64{1}, 1})
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = Mix()
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))
}

func TestSweep(t *testing.T) {
	tm, w, err := Sweep(2000, 1.5, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	require.Len(t, w, 3000)
	require.Len(t, tm, 3000)
	for _, s := range w {
		assert.LessOrEqual(t, math.Abs(s), 1.0)
	}
	assert.Greater(t, Peak(w), 0.9)

	_, again, err := Sweep(2000, 1.5, rand.New(rand.NewSource(4)))
	require.NoError(t, err)
	assert.Equal(t, w, again)

	_, _, err = Sweep(0, 1, rand.New(rand.NewSource(4)))
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))
	_, _, err = Sweep(100, 0, rand.New(rand.NewSource(4)))
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))
}

func TestRandomize(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for i := 0; i < 100; i++ {
		var p Params
		p.Defaults()
		p.Randomize(rng)
		assert.True(t, p.Harmonics >= 3 && p.Harmonics <= 10)
		assert.True(t, p.Decay >= 0.1 && p.Decay < 1.5)
		assert.NoError(t, p.Validate())
	}
}

func TestToFloat32(t *testing.T) {
	assert.Equal(t, []float32{0.5, -0.25}, ToFloat32([]float64{0.5, -0.25}))
}
