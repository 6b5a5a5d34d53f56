// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/emer/phrygian/domain"
)

// Headroom is the peak amplitude of a normalized mix
const Headroom = 0.95

// Layer is one voice with the gain it is mixed at
type Layer struct {
	Wave []float64
	Gain float64
}

// Mix truncates every layer to the shortest one, sums them with their
// gains and rescales the sum so its peak is Headroom. An all-zero sum is
// returned as is.
func Mix(layers ...Layer) ([]float64, error) {
	if len(layers) == 0 {
		return nil, domain.Errorf(domain.InvalidParameter, "synth.Mix", "no voices to mix")
	}
	n := len(layers[0].Wave)
	for _, l := range layers[1:] {
		n = min(n, len(l.Wave))
	}
	out := make([]float64, n)
	for _, l := range layers {
		floats.AddScaled(out, l.Gain, l.Wave[:n])
	}
	if pk := Peak(out); pk > 0 {
		floats.Scale(Headroom/pk, out)
	}
	return out, nil
}

// Peak is the largest absolute sample, 0 for an empty buffer
func Peak(wave []float64) float64 {
	if len(wave) == 0 {
		return 0
	}
	return floats.Norm(wave, math.Inf(1))
}

// ToFloat32 converts a buffer for playback and persistence
func ToFloat32(wave []float64) []float32 {
	out := make([]float32, len(wave))
	for i, s := range wave {
		out[i] = float32(s)
	}
	return out
}
