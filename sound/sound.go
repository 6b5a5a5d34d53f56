// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"math"
	"os"

	"github.com/emer/etable/etensor"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/emer/phrygian/domain"
	"github.com/emer/phrygian/logger"
)

// BitDepth is the PCM sample size used for rendered waves
const BitDepth = 16

const PCM = 1

// Wave holds integer PCM samples with their format
type Wave struct {
	Buf *audio.IntBuffer `inactive:"+"`
}

// FromSamples quantizes mono float samples in [-1, 1] to 16 bit PCM.
// Values outside the range are clipped.
func FromSamples(samples []float32, sampleRate int) (*Wave, error) {
	if sampleRate <= 0 {
		return nil, domain.Errorf(domain.InvalidParameter, "sound.FromSamples", "sample rate %d must be > 0", sampleRate)
	}
	data := make([]int, len(samples))
	for i, s := range samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		data[i] = int(math.Round(v * 0x7FFF))
	}
	return &Wave{Buf: &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: BitDepth,
	}}, nil
}

// Load loads the sound file and decodes it
func (snd *Wave) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return errors.Wrapf(err, "sound.Load: couldn't open %s", fn)
	}
	defer f.Close()
	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return errors.Errorf("sound.Load: %s is not a valid wav file", fn)
	}
	snd.Buf, err = d.FullPCMBuffer()
	if err != nil {
		return errors.Wrapf(err, "sound.Load: decoding %s", fn)
	}
	logger.Debug("sound loaded", logger.Fields{"file": fn, "rate": snd.SampleRate(), "frames": snd.Buf.NumFrames()})
	return nil
}

// WriteWave encodes the signal data and writes it to file using the sample rate and
// other values of the buf object
func (snd *Wave) WriteWave(fn string) error {
	out, err := os.Create(fn)
	if err != nil {
		return errors.Wrapf(err, "sound.WriteWave: unable to create %s", fn)
	}
	defer out.Close()

	e := wav.NewEncoder(out, snd.SampleRate(), snd.Buf.SourceBitDepth, snd.Channels(), PCM)
	if err = e.Write(snd.Buf); err != nil {
		return errors.Wrap(err, "sound.WriteWave: encoding failed on write")
	}
	if err = e.Close(); err != nil {
		return errors.Wrap(err, "sound.WriteWave: could not close wav file encoder")
	}
	logger.Info("wave written", logger.Fields{"file": fn, "rate": snd.SampleRate(), "ms": SamplesToMSec(snd.Buf.NumFrames(), snd.SampleRate())})
	return nil
}

// SampleRate returns the sample rate of the sound or 0 is snd is nil
func (snd *Wave) SampleRate() int {
	if snd == nil || snd.Buf == nil {
		return 0
	}
	return snd.Buf.Format.SampleRate
}

// Channels returns the number of channels in the wav data or 0 is snd is nil
func (snd *Wave) Channels() int {
	if snd == nil || snd.Buf == nil {
		return 0
	}
	return snd.Buf.Format.NumChannels
}

// SoundToTensor converts sound data to floating point etensor with normalized -1..1 values.
// channel selects a single channel of interleaved data; a mono sound ignores it.
func (snd *Wave) SoundToTensor(samples *etensor.Float32, channel int) {
	nFrames := snd.Buf.NumFrames()
	nch := snd.Channels()
	samples.SetShape([]int{nFrames}, nil, nil)
	if nch <= 1 {
		for i := 0; i < nFrames; i++ {
			samples.Values[i] = snd.GetFloatAtIdx(snd.Buf, i)
		}
		return
	}
	idx := 0
	for i := 0; i < nFrames; i++ {
		samples.Values[i] = snd.GetFloatAtIdx(snd.Buf, idx+channel)
		idx += nch
	}
}

// GetFloatAtIdx scales the integer sample at idx by the source bit depth
func (snd *Wave) GetFloatAtIdx(buf *audio.IntBuffer, idx int) float32 {
	switch buf.SourceBitDepth {
	case 32:
		return float32(buf.Data[idx]) / float32(0x7FFFFFFF)
	case 24:
		return float32(buf.Data[idx]) / float32(0x7FFFFF)
	case 16:
		return float32(buf.Data[idx]) / float32(0x7FFF)
	case 8:
		return float32(buf.Data[idx]) / float32(0x7F)
	}
	return 0
}

// MSecToSamples converts milliseconds to samples, in terms of sample_rate
func MSecToSamples(ms float32, rate int) int {
	return int(math.Round(float64(ms) * 0.001 * float64(rate)))
}

// SamplesToMSec converts samples to milliseconds, in terms of sample_rate
func SamplesToMSec(samples int, rate int) float32 {
	if rate <= 0 {
		return 0
	}
	return 1000.0 * float32(samples) / float32(rate)
}
