// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"math"

	"github.com/emer/phrygian/domain"
)

// SweepRate is the rate in Hz at which the sweep frequency oscillates between its bounds
const SweepRate = 0.05

// Sweep renders a slowly gliding sine whose frequency moves between a
// random low bound in [10, 50) and a random high bound in [60, 200).
// The phase is the running sum of the instantaneous frequency, so the glide
// has no discontinuities.
func Sweep(sampleRate int, dur float64, rng Rand) (t, wave []float64, err error) {
	if sampleRate <= 0 {
		return nil, nil, domain.Errorf(domain.InvalidParameter, "synth.Sweep", "sample rate %d must be > 0", sampleRate)
	}
	if !(dur > 0) {
		return nil, nil, domain.Errorf(domain.InvalidParameter, "synth.Sweep", "duration %v must be > 0", dur)
	}
	lo := 10 + 40*rng.Float64()
	hi := 60 + 140*rng.Float64()

	n := NumSamples(sampleRate, dur)
	t = make([]float64, n)
	wave = make([]float64, n)
	if n == 0 {
		return t, wave, nil
	}
	step := dur / float64(n)
	dt := 1 / float64(sampleRate)
	phase := 0.0
	for i := range wave {
		ti := float64(i) * step
		f := lo + (hi-lo)*(math.Sin(2*math.Pi*SweepRate*ti)+1)/2
		phase += 2 * math.Pi * f * dt
		t[i] = ti
		wave[i] = math.Sin(phase)
	}
	return t, wave, nil
}
