// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestFormatFieldsSorted(t *testing.T) {
	got := formatFields(Fields{"notes": 16, "base_hz": 110.0, "style": "melodic_arch"})
	assert.Equal(t, "{base_hz=110.00, notes=16, style=melodic_arch}", got)
	assert.Equal(t, "", formatFields(nil))
}

func TestLevels(t *testing.T) {
	buf := captureLog(t)

	Info("scale built", Fields{"tones": 16})
	Warn("clipped", nil)
	Error("render failed", errors.New("boom"), Fields{"voice": "third"})
	assert.Equal(t, "[INFO] scale built {tones=16}\n[WARN] clipped \n[ERROR] render failed: boom {voice=third}\n", buf.String())
}

func TestDebugGate(t *testing.T) {
	buf := captureLog(t)

	Debug("hidden", nil)
	assert.Empty(t, buf.String())

	DebugEnabled = true
	t.Cleanup(func() { DebugEnabled = false })
	Debug("shown", Fields{"k": 1})
	assert.Equal(t, "[DEBUG] shown {k=1}\n", buf.String())
}

func TestInitSentryWithoutDSN(t *testing.T) {
	flush, err := InitSentry("", "test")
	require.NoError(t, err)
	flush()
}
