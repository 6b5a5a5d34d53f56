// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rhythm generates note durations from named patterns and
// normalizes them to a fixed total length.
package rhythm

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/emer/phrygian/domain"
)

// TotalSeconds is the length every normalized rhythm sums to
const TotalSeconds = 10.0

// Rand is the random source consumed by the random patterns.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Pattern selects how raw durations are produced
type Pattern int32

const (
	Repeating    Pattern = iota // tile the motif 0.5 0.25 0.75 1.0
	Random                      // uniform in [0.25, 1.0]
	Sacred                      // 1.5 on every 4th note, else 0.5
	Epic                        // element-wise min of two tiled layers
	AncientGreek                // long anchor every 4 slots, short branch choices between
	PatternN
)

var patternNames = [PatternN]string{"repeating", "random", "sacred", "epic", "ancient_greek"}

func (p Pattern) String() string {
	if p < 0 || p >= PatternN {
		return fmt.Sprintf("Pattern(%d)", int32(p))
	}
	return patternNames[p]
}

// ParsePattern returns the Pattern named s
func ParsePattern(s string) (Pattern, error) {
	for i, nm := range patternNames {
		if nm == s {
			return Pattern(i), nil
		}
	}
	return 0, domain.Errorf(domain.UnsupportedTag, "rhythm.ParsePattern", "unknown pattern %q", s)
}

// motifs
var (
	repeatingMotif = []float64{0.5, 0.25, 0.75, 1.0}
	epicLayer1     = []float64{0.5, 0.25, 0.75, 1.5}
	epicLayer2     = []float64{0.25, 0.75, 0.5, 1.0}
	greekBranchA   = []float64{0.5, 1.0, 1.25}
	greekBranchB   = []float64{1.0, 1.25, 1.5}
)

// Generate returns n durations in seconds for pattern, normalized to TotalSeconds
func Generate(n int, p Pattern, rng Rand) ([]float64, error) {
	raw, err := Raw(n, p, rng)
	if err != nil {
		return nil, err
	}
	return Normalize(raw, TotalSeconds)
}

// Raw returns the unnormalized durations for pattern
func Raw(n int, p Pattern, rng Rand) ([]float64, error) {
	if n <= 0 {
		return nil, domain.Errorf(domain.InvalidParameter, "rhythm.Generate", "note count %d must be > 0", n)
	}
	switch p {
	case Repeating:
		return tile(repeatingMotif, n), nil
	case Random:
		if rng == nil {
			return nil, domain.Errorf(domain.InvalidParameter, "rhythm.Generate", "pattern %v needs a random source", p)
		}
		r := make([]float64, n)
		for i := range r {
			r[i] = uniform(rng, 0.25, 1.0)
		}
		return r, nil
	case Sacred:
		r := make([]float64, n)
		for i := range r {
			if (i+1)%4 == 0 {
				r[i] = 1.5
			} else {
				r[i] = 0.5
			}
		}
		return r, nil
	case Epic:
		l1 := tile(epicLayer1, n)
		l2 := tile(epicLayer2, n)
		for i := range l1 {
			if l2[i] < l1[i] {
				l1[i] = l2[i]
			}
		}
		return l1, nil
	case AncientGreek:
		if rng == nil {
			return nil, domain.Errorf(domain.InvalidParameter, "rhythm.Generate", "pattern %v needs a random source", p)
		}
		return ancientGreek(n, rng), nil
	}
	return nil, domain.Errorf(domain.UnsupportedTag, "rhythm.Generate", "unknown pattern %v", p)
}

// ancientGreek draws one duration per slot: slots 0, 4, 8... are long anchors,
// the rest flip a coin for the branch set and then pick a member of it
func ancientGreek(n int, rng Rand) []float64 {
	r := make([]float64, 0, n)
	for len(r) < n {
		if len(r)%4 == 0 {
			r = append(r, uniform(rng, 1.5, 2.0))
			continue
		}
		branch := greekBranchB
		if rng.Intn(2) == 0 {
			branch = greekBranchA
		}
		r = append(r, branch[rng.Intn(len(branch))])
	}
	return r
}

// Normalize scales raw uniformly so it sums to total. raw is not modified.
func Normalize(raw []float64, total float64) ([]float64, error) {
	sum := floats.Sum(raw)
	if sum == 0 {
		return nil, domain.Errorf(domain.ZeroDuration, "rhythm.Normalize", "raw durations sum to zero")
	}
	out := make([]float64, len(raw))
	copy(out, raw)
	floats.Scale(total/sum, out)
	return out, nil
}

// Onsets returns the start time of each duration, plus the end time as a final element
func Onsets(durs []float64) []float64 {
	on := make([]float64, len(durs)+1)
	floats.CumSum(on[1:], durs)
	return on
}

func tile(motif []float64, n int) []float64 {
	r := make([]float64, n)
	for i := range r {
		r[i] = motif[i%len(motif)]
	}
	return r
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
