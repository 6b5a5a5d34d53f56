// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline composes scale construction, rhythm and melody
// generation, triad derivation and synthesis into a single run.
package pipeline

import (
	"time"

	"github.com/emer/etable/etensor"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/emer/phrygian/config"
	"github.com/emer/phrygian/dft"
	"github.com/emer/phrygian/logger"
	"github.com/emer/phrygian/melody"
	"github.com/emer/phrygian/rhythm"
	"github.com/emer/phrygian/scale"
	"github.com/emer/phrygian/synth"
	"github.com/emer/phrygian/triad"
)

// Rand is the single random source a run draws from, in order:
// sweep bounds, example timbre, rhythm, melody. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Trace is a waveform with its sample times, kept for inspection plots
type Trace struct {
	T    []float64
	Wave []float64
}

// Result is everything a run produces for the playback and plotting collaborators
type Result struct {
	RunID      string
	SampleRate int

	BaseFreq float64
	Base     scale.Scale
	Derived  scale.Scale

	Rhythm []float64
	Melody []float64 // triad roots
	Fifth  []float64
	Third  []float64

	Mix []float32 // peak <= synth.Headroom

	Sweep   Trace // empty when the base frequency was configured
	Example Trace // one harmonic note at the base frequency
}

// Lines returns the three voice lines in plotting order
func (r *Result) Lines() (lines [][]float64, labels []string) {
	return [][]float64{r.Melody, r.Fifth, r.Third}, []string{"Melody", "Fifth Harmony", "Third Harmony"}
}

// Run validates cfg and performs one generation run
func Run(cfg *config.Config, rng Rand) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "pipeline: config")
	}
	style, _ := melody.ParseStyle(cfg.Style)
	pattern, _ := rhythm.ParsePattern(cfg.Pattern)

	res := &Result{RunID: uuid.NewString(), SampleRate: cfg.Synth.SampleRate}
	fields := logger.Fields{"run_id": res.RunID}
	start := time.Now()

	res.BaseFreq = cfg.BaseFreq
	if res.BaseFreq == 0 {
		if err := res.extractBase(cfg, rng); err != nil {
			return nil, err
		}
		logger.Info("base frequency extracted", logger.Fields{"run_id": res.RunID, "hz": res.BaseFreq})
	}

	var err error
	timbre := cfg.Synth
	if cfg.RandomTimbre {
		timbre.Randomize(rng)
		logger.Debug("example timbre drawn", logger.Fields{"run_id": res.RunID, "harmonics": timbre.Harmonics, "decay": timbre.Decay})
	}
	res.Example.T, res.Example.Wave, err = synth.Note(res.BaseFreq, cfg.SweepSecs, timbre)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: example note")
	}

	if res.Base, err = scale.BuildBase(res.BaseFreq, cfg.Octaves); err != nil {
		return nil, errors.Wrap(err, "pipeline: base scale")
	}
	if res.Derived, err = scale.BuildDerived(res.Base, cfg.Octaves); err != nil {
		return nil, errors.Wrap(err, "pipeline: derived scale")
	}
	if res.Rhythm, err = rhythm.Generate(cfg.Notes, pattern, rng); err != nil {
		return nil, errors.Wrap(err, "pipeline: rhythm")
	}
	mel, err := melody.Generate(res.Base, cfg.Notes, style, rng)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: melody")
	}
	if err := res.harmonize(cfg, mel); err != nil {
		return nil, err
	}
	logger.Debug("lines derived", logger.Fields{"run_id": res.RunID, "notes": len(res.Melody), "style": cfg.Style, "pattern": cfg.Pattern, "harmony": cfg.Harmony})

	if err := res.render(cfg); err != nil {
		return nil, err
	}
	fields["ms"] = time.Since(start).Milliseconds()
	fields["samples"] = len(res.Mix)
	logger.Info("run complete", fields)
	return res, nil
}

// extractBase renders the sweep and takes its fundamental as the base frequency
func (res *Result) extractBase(cfg *config.Config, rng Rand) error {
	t, wave, err := synth.Sweep(cfg.Synth.SampleRate, cfg.SweepSecs, rng)
	if err != nil {
		return errors.Wrap(err, "pipeline: sweep")
	}
	res.Sweep = Trace{T: t, Wave: wave}

	sig := etensor.NewFloat32([]int{len(wave)}, nil, nil)
	for i, s := range wave {
		sig.Values[i] = float32(s)
	}
	var ft dft.Params
	ft.Defaults()
	res.BaseFreq, err = ft.Fundamental(sig, cfg.Synth.SampleRate)
	return errors.Wrap(err, "pipeline: fundamental")
}

// harmonize derives the fifth and third lines under cfg.Harmony
func (res *Result) harmonize(cfg *config.Config, mel []float64) error {
	if cfg.Harmony == config.HarmonyParallel {
		res.Melody = mel
		res.Fifth = triad.Parallel(mel, triad.PerfectFifth, 0)
		res.Third = triad.Between(mel, triad.PerfectFifth, triad.MinorThird, 0)
		return nil
	}
	triads, err := triad.DeriveAll(mel, res.Derived)
	if err != nil {
		return errors.Wrap(err, "pipeline: triads")
	}
	res.Melody, res.Fifth, res.Third = triad.Lines(triads)
	return nil
}

// render synthesizes the three voices and mixes them at the configured gains
func (res *Result) render(cfg *config.Config) error {
	lines, labels := res.Lines()
	gains := []float64{cfg.Gains.Melody, cfg.Gains.Fifth, cfg.Gains.Third}
	layers := make([]synth.Layer, len(lines))
	for i, line := range lines {
		w, err := synth.Voice(line, res.Rhythm, cfg.Synth)
		if err != nil {
			return errors.Wrapf(err, "pipeline: %s voice", labels[i])
		}
		layers[i] = synth.Layer{Wave: w, Gain: gains[i]}
	}
	mix, err := synth.Mix(layers...)
	if err != nil {
		return errors.Wrap(err, "pipeline: mix")
	}
	res.Mix = synth.ToFloat32(mix)
	return nil
}
