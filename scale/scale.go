// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale builds the just-intonation base scale and the phrygian
// subset derived from it.
package scale

import (
	"math"
	"sort"

	"github.com/emer/phrygian/domain"
)

// Scale is an ordered sequence of positive frequencies in Hz
type Scale []float64

// Ratios are the eight just-intonation ratios of one octave block.
// Ratio 2 of block k equals ratio 1 of block k+1, so the seam tone appears twice.
var Ratios = [8]float64{1, 9.0 / 8, 5.0 / 4, 4.0 / 3, 3.0 / 2, 5.0 / 3, 15.0 / 8, 2}

// PhrygianDegrees are the base-scale offsets selected for the derived scale,
// taken modulo the base scale length
var PhrygianDegrees = [7]int{0, 1, 3, 5, 7, 8, 10}

// BuildBase returns 8*octaves tones: base * ratio * 2^k for each octave block k
func BuildBase(base float64, octaves int) (Scale, error) {
	if !(base > 0) || math.IsInf(base, 0) {
		return nil, domain.Errorf(domain.InvalidParameter, "scale.BuildBase", "base frequency %v must be > 0", base)
	}
	if octaves < 1 {
		return nil, domain.Errorf(domain.InvalidParameter, "scale.BuildBase", "octave count %d must be >= 1", octaves)
	}
	sc := make(Scale, 0, len(Ratios)*octaves)
	for k := 0; k < octaves; k++ {
		mult := math.Ldexp(1, k)
		for _, r := range Ratios {
			sc = append(sc, base*r*mult)
		}
	}
	return sc, nil
}

// BuildDerived selects PhrygianDegrees from base, replicates the 7-tone
// subset once per octave (times 2^k) and returns the result sorted ascending.
// The modulo wrap on short base scales puts wrapped degrees out of order, so
// sorting here means callers always receive an ascending scale.
func BuildDerived(base Scale, octaves int) (Scale, error) {
	if len(base) == 0 {
		return nil, domain.Errorf(domain.InvalidParameter, "scale.BuildDerived", "base scale is empty")
	}
	if octaves < 1 {
		return nil, domain.Errorf(domain.InvalidParameter, "scale.BuildDerived", "octave count %d must be >= 1", octaves)
	}
	var subset [len(PhrygianDegrees)]float64
	for i, d := range PhrygianDegrees {
		subset[i] = base[d%len(base)]
	}
	sc := make(Scale, 0, len(subset)*octaves)
	for k := 0; k < octaves; k++ {
		mult := math.Ldexp(1, k)
		for _, f := range subset {
			sc = append(sc, f*mult)
		}
	}
	sort.Float64s(sc)
	return sc, nil
}

// Last returns the final tone, or 0 for an empty scale
func (sc Scale) Last() float64 {
	if len(sc) == 0 {
		return 0
	}
	return sc[len(sc)-1]
}

// Contains reports exact membership of f
func (sc Scale) Contains(f float64) bool {
	for _, v := range sc {
		if v == f {
			return true
		}
	}
	return false
}

// IsSorted reports whether the scale is ascending (duplicates allowed)
func (sc Scale) IsSorted() bool {
	return sort.Float64sAreSorted(sc)
}
