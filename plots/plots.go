// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plots renders inspection plots of scales, voice lines and
// waveforms to image files.
package plots

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/emer/phrygian/domain"
	"github.com/emer/phrygian/rhythm"
)

// Size of saved plots
var (
	Width  = 10 * vg.Inch
	Height = 4 * vg.Inch
)

// DefaultDownsample is the stride used when plotting full-rate waveforms
const DefaultDownsample = 100

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, w, h vg.Length, fn string) error {
	return errors.Wrapf(p.Save(w, h, fn), "plots: saving %s", fn)
}

// Waveform plots every stride-th sample of wave against its time t.
// The file format follows the extension of fn.
func Waveform(t, wave []float64, stride int, fn string) error {
	if len(t) != len(wave) {
		return domain.Errorf(domain.LengthMismatch, "plots.Waveform", "%d times, %d samples", len(t), len(wave))
	}
	if stride < 1 {
		stride = 1
	}
	xys := make(plotter.XYs, 0, len(wave)/stride+1)
	for i := 0; i < len(wave); i += stride {
		xys = append(xys, plotter.XY{X: t[i], Y: wave[i]})
	}
	p := newPlot("Waveform", "Time (s)", "Amplitude")
	l, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrap(err, "plots: waveform line")
	}
	l.LineStyle.Color = color.RGBA{R: 255, G: 165, A: 255}
	p.Add(l)
	return save(p, Width, Height, fn)
}

// Circle maps the peak-normalized wave onto the unit circle, angle 2π·sample
func Circle(wave []float64, fn string) error {
	pk := 0.0
	for _, s := range wave {
		pk = math.Max(pk, math.Abs(s))
	}
	if pk == 0 {
		return domain.Errorf(domain.InvalidParameter, "plots.Circle", "wave is silent")
	}
	xys := make(plotter.XYs, len(wave))
	for i, s := range wave {
		a := 2 * math.Pi * s / pk
		xys[i] = plotter.XY{X: math.Cos(a), Y: math.Sin(a)}
	}
	p := newPlot("Circular Mapping", "", "")
	l, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrap(err, "plots: circle line")
	}
	l.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(l)
	return save(p, 6*vg.Inch, 6*vg.Inch, fn)
}

// Scale plots each tone against its index
func Scale(sc []float64, title, fn string) error {
	xys := make(plotter.XYs, len(sc))
	for i, f := range sc {
		xys[i] = plotter.XY{X: float64(i), Y: f}
	}
	p := newPlot(title, "Note Index", "Frequency (Hz)")
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "plots: scale points")
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	return save(p, Width, Height, fn)
}

// MelodyLines plots each line against the midpoint time of its notes
func MelodyLines(lines [][]float64, labels []string, durs []float64, fn string) error {
	if len(lines) != len(labels) {
		return domain.Errorf(domain.LengthMismatch, "plots.MelodyLines", "%d lines, %d labels", len(lines), len(labels))
	}
	n := len(durs)
	for _, l := range lines {
		n = min(n, len(l))
	}
	on := rhythm.Onsets(durs[:n])

	p := newPlot("Melodies Over Time", "Time (s)", "Frequency (Hz)")
	vs := make([]any, 0, 2*len(lines))
	for i, line := range lines {
		xys := make(plotter.XYs, n)
		for j := 0; j < n; j++ {
			xys[j] = plotter.XY{X: (on[j] + on[j+1]) / 2, Y: line[j]}
		}
		vs = append(vs, labels[i], xys)
	}
	if err := plotutil.AddLinePoints(p, vs...); err != nil {
		return errors.Wrap(err, "plots: melody lines")
	}
	return save(p, Width, 6*vg.Inch, fn)
}
