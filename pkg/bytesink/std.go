// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import (
	"context"

	"golang.org/x/term"
	"tailscale.com/types/lazy"
)

// Std owns the standard output and standard error sinks of a process. The
// sinks are created on first use, unbuffered, and wrapped in ThreadSafe.
//
// Hosts create one Std and pass it down with WithStd instead of reaching for
// globals, which keeps code that prints testable.
type Std struct {
	newOut func() Sink
	newErr func() Sink
	outFD  int
	errFD  int

	out lazy.SyncValue[*ThreadSafe]
	err lazy.SyncValue[*ThreadSafe]
}

// NewStd returns a Std over file descriptors 1 and 2.
func NewStd() *Std {
	return &Std{
		newOut: func() Sink { return newFD(1, "/dev/stdout", Options{Unbuffered: true}) },
		newErr: func() Sink { return newFD(2, "/dev/stderr", Options{Unbuffered: true}) },
		outFD:  1,
		errFD:  2,
	}
}

// NewStdWith returns a Std whose output and error sinks are stdout and
// stderr. It is meant for tests and for hosts that redirect output.
func NewStdWith(stdout, stderr Sink) *Std {
	return &Std{
		newOut: func() Sink { return stdout },
		newErr: func() Sink { return stderr },
		outFD:  -1,
		errFD:  -1,
	}
}

// Stdout returns the shared standard output sink.
func (s *Std) Stdout() *ThreadSafe {
	return s.out.Get(func() *ThreadSafe { return NewThreadSafe(s.newOut()) })
}

// Stderr returns the shared standard error sink.
func (s *Std) Stderr() *ThreadSafe {
	return s.err.Get(func() *ThreadSafe { return NewThreadSafe(s.newErr()) })
}

// StdoutIsTerminal reports whether standard output is a terminal. It is
// false for a Std built with NewStdWith.
func (s *Std) StdoutIsTerminal() bool {
	return s.outFD >= 0 && term.IsTerminal(s.outFD)
}

// StderrIsTerminal reports whether standard error is a terminal.
func (s *Std) StderrIsTerminal() bool {
	return s.errFD >= 0 && term.IsTerminal(s.errFD)
}

// Flush flushes both sinks.
func (s *Std) Flush() {
	s.Stdout().Flush()
	s.Stderr().Flush()
}

type stdKey struct{}

var processStd lazy.SyncValue[*Std]

// WithStd returns a copy of ctx carrying std.
func WithStd(ctx context.Context, std *Std) context.Context {
	return context.WithValue(ctx, stdKey{}, std)
}

// StdFrom returns the Std carried by ctx, or the process default if there is
// none.
func StdFrom(ctx context.Context) *Std {
	if std, ok := ctx.Value(stdKey{}).(*Std); ok && std != nil {
		return std
	}
	return processStd.Get(NewStd)
}
