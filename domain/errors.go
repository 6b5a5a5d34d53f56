// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domain holds the error taxonomy shared by the generation packages.
package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure
type Kind int32

const (
	InvalidParameter Kind = iota // non-positive counts or frequencies, empty scales
	UnsupportedTag               // unknown melody style or rhythm pattern
	ZeroDuration                 // rhythm total is zero, normalization undefined
	LengthMismatch               // paired sequences of different lengths
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "invalid parameter"
	case UnsupportedTag:
		return "unsupported tag"
	case ZeroDuration:
		return "zero duration"
	case LengthMismatch:
		return "length mismatch"
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Sentinels for errors.Is matching by kind
var (
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrUnsupportedTag   = &Error{Kind: UnsupportedTag}
	ErrZeroDuration     = &Error{Kind: ZeroDuration}
	ErrLengthMismatch   = &Error{Kind: LengthMismatch}
)

// Error is a local, synchronous failure raised where it is detected
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "scale.BuildBase"
	Msg  string
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Kind.String()
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Errorf returns a new *Error of kind k for operation op
func Errorf(k Kind, op, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether any error in err's chain is an *Error of kind k
func IsKind(err error, k Kind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == k
	}
	return false
}
