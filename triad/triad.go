// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package triad snaps melody notes onto a target scale and builds
// root / minor third / perfect fifth harmonies from them.
package triad

import (
	"math"

	"github.com/emer/phrygian/domain"
	"github.com/emer/phrygian/scale"
)

// Equal-tempered interval ratios used as snapping targets
var (
	MinorThird   = math.Pow(2, 3.0/12)
	PerfectFifth = math.Pow(2, 7.0/12)
)

// Triad is a three-voice chord; every member belongs to the scale it was derived from
type Triad struct {
	Root  float64
	Third float64
	Fifth float64
}

// NearestTone returns the element of sc closest to target.
// Ties keep the first element in scale order. sc must not be empty.
func NearestTone(target float64, sc scale.Scale) (float64, error) {
	if len(sc) == 0 {
		return 0, domain.Errorf(domain.InvalidParameter, "triad.NearestTone", "scale is empty")
	}
	best := sc[0]
	bestDist := math.Abs(best - target)
	for _, f := range sc[1:] {
		if d := math.Abs(f - target); d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, nil
}

// Derive snaps freq to its root in sc and finds the nearest third and fifth above it
func Derive(freq float64, sc scale.Scale) (Triad, error) {
	root, err := NearestTone(freq, sc)
	if err != nil {
		return Triad{}, err
	}
	// sc is known non-empty past this point
	third, _ := NearestTone(root*MinorThird, sc)
	fifth, _ := NearestTone(root*PerfectFifth, sc)
	return Triad{Root: root, Third: third, Fifth: fifth}, nil
}

// DeriveAll derives one triad per melody note
func DeriveAll(melody []float64, sc scale.Scale) ([]Triad, error) {
	if len(sc) == 0 {
		return nil, domain.Errorf(domain.InvalidParameter, "triad.DeriveAll", "scale is empty")
	}
	ts := make([]Triad, len(melody))
	for i, f := range melody {
		t, err := Derive(f, sc)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}

// Lines splits triads into the melody (root), fifth-harmony and third-harmony lines
func Lines(ts []Triad) (melody, fifth, third []float64) {
	melody = make([]float64, len(ts))
	fifth = make([]float64, len(ts))
	third = make([]float64, len(ts))
	for i, t := range ts {
		melody[i], fifth[i], third[i] = t.Root, t.Fifth, t.Third
	}
	return
}

// Parallel moves every note of line by ratio and then by octaveShift octaves
func Parallel(line []float64, ratio float64, octaveShift int) []float64 {
	mult := math.Ldexp(ratio, octaveShift)
	out := make([]float64, len(line))
	for i, f := range line {
		out[i] = f * mult
	}
	return out
}

// Between builds a line at the geometric mean of two parallel intervals,
// shifted by octaveShift octaves
func Between(line []float64, ratio1, ratio2 float64, octaveShift int) []float64 {
	shift := math.Ldexp(1, octaveShift)
	out := make([]float64, len(line))
	for i, f := range line {
		out[i] = math.Sqrt(f*ratio1*f*ratio2) * shift
	}
	return out
}
