// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesByKind(t *testing.T) {
	err := Errorf(ZeroDuration, "rhythm.Normalize", "total is %v", 0.0)

	assert.True(t, errors.Is(err, ErrZeroDuration))
	assert.False(t, errors.Is(err, ErrInvalidParameter))
	assert.Equal(t, "rhythm.Normalize: zero duration: total is 0", err.Error())
}

func TestIsKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("stage melody: %w", Errorf(UnsupportedTag, "melody.Generate", "style %q", "waltz"))

	assert.True(t, IsKind(err, UnsupportedTag))
	assert.False(t, IsKind(err, LengthMismatch))
	assert.False(t, IsKind(errors.New("plain"), UnsupportedTag))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "length mismatch", LengthMismatch.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}
