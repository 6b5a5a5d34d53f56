// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/oto"
	"github.com/pkg/errors"

	"github.com/emer/phrygian/logger"
)

// the ebiten decoder always yields 16 bit stereo at the requested rate
const (
	playChannels = 2
	playBytes    = 2
	playBufBytes = 4096
)

// PlayWav decodes the wav file fn at the given rate and blocks until it has
// been written to a player of context
func PlayWav(context *oto.Context, fn string, rate int) error {
	f, err := os.Open(fn)
	if err != nil {
		return errors.Wrapf(err, "sound.PlayWav: couldn't open %s", fn)
	}
	defer f.Close()

	s, err := wav.DecodeWithSampleRate(rate, f)
	if err != nil {
		return errors.Wrapf(err, "sound.PlayWav: decoding %s", fn)
	}
	p := context.NewPlayer()
	if _, err := io.Copy(p, s); err != nil {
		p.Close()
		return errors.Wrap(err, "sound.PlayWav: streaming to player")
	}
	return p.Close()
}

// Play plays the wav file fn on the default audio device and returns when done
func Play(fn string, rate int) error {
	c, err := oto.NewContext(rate, playChannels, playBytes, playBufBytes)
	if err != nil {
		return errors.Wrap(err, "sound.Play: opening audio device")
	}
	defer c.Close()

	logger.Info("playing", logger.Fields{"file": fn, "rate": rate})
	return PlayWav(c, fn, rate)
}
