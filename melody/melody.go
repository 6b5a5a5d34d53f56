// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package melody walks a scale under a style-specific state machine to
// produce a sequence of frequencies.
package melody

import (
	"fmt"

	"github.com/emer/phrygian/domain"
	"github.com/emer/phrygian/scale"
)

// Rand is the random source the walkers draw steps from.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Style selects the contour of the melody
type Style int32

const (
	MelodicArch  Style = iota // rise to the top of the scale, then fall
	CallResponse              // reset to the tonic every 8 notes, alternate up / down between
	StyleN
)

var styleNames = [StyleN]string{"melodic_arch", "call_response"}

func (s Style) String() string {
	if s < 0 || s >= StyleN {
		return fmt.Sprintf("Style(%d)", int32(s))
	}
	return styleNames[s]
}

// ParseStyle returns the Style named s
func ParseStyle(s string) (Style, error) {
	for i, nm := range styleNames {
		if nm == s {
			return Style(i), nil
		}
	}
	return 0, domain.Errorf(domain.UnsupportedTag, "melody.ParseStyle", "unknown style %q", s)
}

// PhraseLen is the call_response period between tonic resets
const PhraseLen = 8

// Walker advances a scale index one note at a time
type Walker interface {
	Next(rng Rand) int
}

// NewWalker returns a fresh walker for style over sc
func NewWalker(sc scale.Scale, style Style) (Walker, error) {
	switch style {
	case MelodicArch:
		return &Arch{Scale: sc}, nil
	case CallResponse:
		return &Call{Scale: sc}, nil
	}
	return nil, domain.Errorf(domain.UnsupportedTag, "melody.Generate", "unknown style %v", style)
}

// Generate returns n frequencies from sc following style. Output is
// deterministic for a given seeded rng.
func Generate(sc scale.Scale, n int, style Style, rng Rand) ([]float64, error) {
	idx, err := GenerateIndices(sc, n, style, rng)
	if err != nil {
		return nil, err
	}
	mel := make([]float64, n)
	for i, x := range idx {
		mel[i] = sc[x]
	}
	return mel, nil
}

// GenerateIndices is Generate returning scale indices instead of frequencies
func GenerateIndices(sc scale.Scale, n int, style Style, rng Rand) ([]int, error) {
	if len(sc) == 0 {
		return nil, domain.Errorf(domain.InvalidParameter, "melody.Generate", "scale is empty")
	}
	if n <= 0 {
		return nil, domain.Errorf(domain.InvalidParameter, "melody.Generate", "note count %d must be > 0", n)
	}
	if rng == nil {
		return nil, domain.Errorf(domain.InvalidParameter, "melody.Generate", "random source is nil")
	}
	w, err := NewWalker(sc, style)
	if err != nil {
		return nil, err
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = w.Next(rng)
	}
	return idx, nil
}

// Arch climbs by 1-3 steps until it has stood on the top tone, then
// descends by 1-3 steps for the rest of the melody
type Arch struct {
	Scale       scale.Scale
	Cur         int
	PeakReached bool
}

// Next draws one step. The peak check looks at the value before the step,
// so the note that lands on the top is still emitted ascending.
func (a *Arch) Next(rng Rand) int {
	last := len(a.Scale) - 1
	step := 1 + rng.Intn(3)
	if a.PeakReached {
		a.Cur = max(a.Cur-step, 0)
		return a.Cur
	}
	if a.Scale[a.Cur] == a.Scale[last] {
		a.PeakReached = true
	}
	a.Cur = min(a.Cur+step, last)
	return a.Cur
}

// Call resets to the tonic every PhraseLen notes and alternates an up
// sub-phase (2-4 steps) with a down sub-phase (1-2 steps) in between
type Call struct {
	Scale        scale.Scale
	Cur          int
	Pos          int
	TonicReached bool
	Alternate    bool // true selects the up sub-phase
}

func (c *Call) Next(rng Rand) int {
	last := len(c.Scale) - 1
	defer func() { c.Pos++ }()

	if c.Pos%PhraseLen == 0 {
		c.Cur = 0
		c.TonicReached = true
		return c.Cur
	}
	if c.TonicReached {
		if c.Alternate {
			c.Cur = min(c.Cur+2+rng.Intn(3), last)
			c.Alternate = false
		} else {
			c.Cur = max(c.Cur-1-rng.Intn(2), 0)
			c.Alternate = true
		}
		return c.Cur
	}
	// before the first reset: direction, then step
	up := rng.Intn(2) == 0
	step := 1 + rng.Intn(2)
	if up {
		c.Cur = min(c.Cur+step, last)
	} else {
		c.Cur = max(c.Cur-step, 0)
	}
	return c.Cur
}
