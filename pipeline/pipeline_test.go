// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/emer/phrygian/config"
	"github.com/emer/phrygian/domain"
	"github.com/emer/phrygian/rhythm"
	"github.com/emer/phrygian/synth"
	"github.com/emer/phrygian/triad"
)

// smallConfig keeps renders fast
func smallConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Defaults()
	cfg.BaseFreq = 110
	cfg.Notes = 8
	cfg.Synth.SampleRate = 2000
	cfg.Synth.Harmonics = 4
	cfg.Synth.Decay = 1.5
	cfg.SweepSecs = 0.5
	return cfg
}

func TestRunProducesAlignedLines(t *testing.T) {
	cfg := smallConfig()
	res, err := Run(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 110.0, res.BaseFreq)
	assert.Len(t, res.Base, 16)
	assert.Len(t, res.Derived, 14)
	assert.True(t, res.Derived.IsSorted())
	assert.Empty(t, res.Sweep.Wave)
	assert.Len(t, res.Example.Wave, 1000)

	require.Len(t, res.Rhythm, 8)
	assert.InDelta(t, rhythm.TotalSeconds, floats.Sum(res.Rhythm), 1e-9)
	for _, line := range [][]float64{res.Melody, res.Fifth, res.Third} {
		require.Len(t, line, 8)
		for _, f := range line {
			assert.True(t, res.Derived.Contains(f))
		}
	}

	want := 0
	for _, d := range res.Rhythm {
		want += synth.NumSamples(cfg.Synth.SampleRate, d)
	}
	assert.Len(t, res.Mix, want)

	pk := 0.0
	for _, s := range res.Mix {
		pk = math.Max(pk, math.Abs(float64(s)))
	}
	assert.InDelta(t, synth.Headroom, pk, 1e-6)
}

func TestRunIsReproducible(t *testing.T) {
	cfg := smallConfig()
	cfg.BaseFreq = 0
	cfg.Pattern = "ancient_greek"
	cfg.Style = "call_response"

	a, err := Run(cfg, rand.New(rand.NewSource(77)))
	require.NoError(t, err)
	b, err := Run(cfg, rand.New(rand.NewSource(77)))
	require.NoError(t, err)

	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.BaseFreq, b.BaseFreq)
	assert.Equal(t, a.Rhythm, b.Rhythm)
	assert.Equal(t, a.Melody, b.Melody)
	assert.Equal(t, a.Mix, b.Mix)
}

func TestRunExtractsBaseFromSweep(t *testing.T) {
	cfg := smallConfig()
	cfg.BaseFreq = 0
	res, err := Run(cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	assert.Len(t, res.Sweep.Wave, 1000)
	assert.GreaterOrEqual(t, res.BaseFreq, 10.0)
	assert.LessOrEqual(t, res.BaseFreq, 200.0)
	assert.Equal(t, res.BaseFreq, res.Base[0])
}

func TestRunRejectsBadConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Style = "twelve_tone"
	_, err := Run(cfg, rand.New(rand.NewSource(1)))
	assert.True(t, domain.IsKind(err, domain.UnsupportedTag))

	cfg = smallConfig()
	cfg.SweepSecs = -0.5
	_, err = Run(cfg, rand.New(rand.NewSource(1)))
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))
	assert.Contains(t, err.Error(), "config.Validate")

	cfg = smallConfig()
	cfg.Notes = -2
	_, err = Run(cfg, rand.New(rand.NewSource(1)))
	assert.True(t, domain.IsKind(err, domain.InvalidParameter))
}

func TestLinesOrder(t *testing.T) {
	res := &Result{Melody: []float64{1}, Fifth: []float64{2}, Third: []float64{3}}
	lines, labels := res.Lines()
	assert.Equal(t, [][]float64{{1}, {2}, {3}}, lines)
	assert.Equal(t, []string{"Melody", "Fifth Harmony", "Third Harmony"}, labels)
}

func TestRunParallelHarmony(t *testing.T) {
	cfg := smallConfig()
	cfg.Harmony = config.HarmonyParallel
	res, err := Run(cfg, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	require.Len(t, res.Melody, 8)
	for i, f := range res.Melody {
		assert.True(t, res.Base.Contains(f))
		assert.InDelta(t, f*triad.PerfectFifth, res.Fifth[i], 1e-9)
		assert.InDelta(t, f*math.Sqrt(triad.PerfectFifth*triad.MinorThird), res.Third[i], 1e-9)
	}
	assert.NotEmpty(t, res.Mix)
}

func TestRunRandomTimbreIsReproducible(t *testing.T) {
	cfg := smallConfig()
	plain, err := Run(cfg, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	cfg.RandomTimbre = true
	drawn, err := Run(cfg, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	assert.Len(t, drawn.Example.Wave, len(plain.Example.Wave))
	again, err := Run(cfg, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, drawn.Example.Wave, again.Example.Wave)
	assert.Equal(t, drawn.Melody, again.Melody)
}
