// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dft

import (
	"math"

	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/emer/phrygian/domain"
)

// Params holds the settings and output of a real fourier transform over a whole signal
type Params struct {
	CompLogPow bool         `def:"true" desc:"compute the log of the power and save that to a separate tensor -- generaly more useful for visualization of power than raw power values"`
	LogMin     float32      `viewif:"CompLogPow" def:"-100" desc:"minimum value a log can produce -- puts a lower limit on log output"`
	LogOffSet  float32      `viewif:"CompLogPow" def:"0" desc:"add this amount when taking the log of the dft power -- e.g., 1.0 makes everything positive -- affects the relative contrast of the outputs"`
	N          int          `inactive:"+" desc:" number of samples in the last transformed signal"`
	Fft        []complex128 `inactive:"+" desc:" discrete fourier transform (fft) output, N/2+1 non-negative frequency coefficients"`
}

func (dft *Params) Defaults() {
	dft.CompLogPow = true
	dft.LogOffSet = 0
	dft.LogMin = -100
}

// Input applies the fft to the signal. signal must be 1D.
func (dft *Params) Input(signal *etensor.Float32) {
	dft.N = signal.Len()
	seq := make([]float64, dft.N)
	for i := range seq {
		seq[i] = signal.FloatVal1D(i)
	}
	if dft.N == 0 {
		dft.Fft = nil
		return
	}
	fft := fourier.NewFFT(dft.N)
	dft.Fft = fft.Coefficients(nil, seq)
}

// Power writes the power of each coefficient of the last Input, and the log power if CompLogPow
func (dft *Params) Power(power *etensor.Float32, logPower *etensor.Float32) {
	power.SetShape([]int{len(dft.Fft)}, nil, nil)
	if dft.CompLogPow {
		logPower.SetShape([]int{len(dft.Fft)}, nil, nil)
	}
	for k, c := range dft.Fft {
		rl := real(c)
		im := imag(c)
		powr := rl*rl + im*im
		power.SetFloat1D(k, powr)

		if dft.CompLogPow {
			var logp float64
			powr += float64(dft.LogOffSet)
			if powr == 0 {
				logp = float64(dft.LogMin)
			} else {
				logp = math.Log(powr)
			}
			logPower.SetFloat1D(k, logp)
		}
	}
}

// BinFreq returns the frequency in Hz of coefficient k of the last Input
func (dft *Params) BinFreq(k, sampleRate int) float64 {
	return float64(k) * float64(sampleRate) / float64(dft.N)
}

// Fundamental transforms the signal and returns the frequency of the
// strongest strictly positive bin. The DC bin and, for an even length,
// the Nyquist bin are not candidates.
func (dft *Params) Fundamental(signal *etensor.Float32, sampleRate int) (float64, error) {
	if sampleRate <= 0 {
		return 0, domain.Errorf(domain.InvalidParameter, "dft.Fundamental", "sample rate %d must be > 0", sampleRate)
	}
	if signal.Len() < 3 {
		return 0, domain.Errorf(domain.InvalidParameter, "dft.Fundamental", "signal of %d samples has no positive frequency bins", signal.Len())
	}
	dft.Input(signal)
	best, bestMag := 1, -1.0
	for k := 1; k <= (dft.N-1)/2; k++ {
		c := dft.Fft[k]
		mag := math.Hypot(real(c), imag(c))
		if mag > bestMag {
			best, bestMag = k, mag
		}
	}
	return dft.BinFreq(best, sampleRate), nil
}
