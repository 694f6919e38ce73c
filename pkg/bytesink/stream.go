// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import (
	"fmt"
	"io"
	"sync"
)

// DefaultBufferSize is the buffer capacity used when Options.BufferSize is zero.
const DefaultBufferSize = 1024

// Sink is the byte output interface shared by every stream in this package.
//
// Writes never report an error. Failures of the underlying backend are
// recorded and returned by Err, and by Close on backends that have one.
type Sink interface {
	io.Writer
	io.ByteWriter
	io.StringWriter

	// Flush hands any buffered bytes to the backend.
	Flush()
	// Position returns the number of bytes accepted so far, including bytes
	// that are still buffered.
	Position() int64
	// Err returns the first error reported by the backend, if any.
	Err() error
}

// Options configures a Stream. The zero value is a buffered stream with
// DefaultBufferSize capacity.
type Options struct {
	// BufferSize is the buffer capacity in bytes. Values <= 0 select
	// DefaultBufferSize.
	BufferSize int
	// Unbuffered forwards every write to the backend immediately. This is
	// what line-oriented outputs such as a terminal want.
	Unbuffered bool
}

// backend is the physical-write primitive a Stream buffers in front of.
type backend interface {
	writeImpl(p []byte) error
}

// flusher is implemented by backends that keep state of their own which must
// be pushed out on Flush.
type flusher interface {
	flushImpl() error
}

// Stream is a buffered or unbuffered Sink over a backend. The backends in
// this package embed a Stream; the zero Stream is not usable.
//
// A Stream is not safe for concurrent use; see ThreadSafe.
type Stream struct {
	// mu is never taken by the Stream itself. It is handed to ThreadSafe
	// wrappers so that every wrapper of one Stream uses the same lock.
	mu sync.Mutex

	be       backend
	buf      []byte
	size     int
	buffered bool
	pos      int64
	err      error
}

func (s *Stream) init(be backend, opts Options) {
	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	s.be = be
	s.size = size
	s.buffered = !opts.Unbuffered
	if s.buffered {
		s.buf = make([]byte, 0, size)
	}
}

func (s *Stream) sinkLock() *sync.Mutex {
	return &s.mu
}

// Buffered reports whether the stream buffers writes.
func (s *Stream) Buffered() bool {
	return s.buffered
}

// BufferSize returns the buffer capacity.
func (s *Stream) BufferSize() int {
	return s.size
}

// Position implements Sink.
func (s *Stream) Position() int64 {
	return s.pos
}

// Err implements Sink.
func (s *Stream) Err() error {
	return s.err
}

// Write implements io.Writer. It always returns len(p), nil.
func (s *Stream) Write(p []byte) (int, error) {
	s.pos += int64(len(p))
	s.write(p)
	return len(p), nil
}

// WriteString implements io.StringWriter. It always returns len(str), nil.
func (s *Stream) WriteString(str string) (int, error) {
	s.pos += int64(len(str))
	s.write([]byte(str))
	return len(str), nil
}

// WriteByte implements io.ByteWriter. It always returns nil.
func (s *Stream) WriteByte(c byte) error {
	s.pos++
	if !s.buffered {
		s.emit([]byte{c})
		return nil
	}
	if len(s.buf) >= s.size {
		s.flushBuffer()
	}
	s.buf = append(s.buf, c)
	return nil
}

// Printf formats according to a format specifier and writes to the stream.
func (s *Stream) Printf(format string, args ...any) {
	fmt.Fprintf(s, format, args...)
}

// Flush implements Sink.
func (s *Stream) Flush() {
	s.flushBuffer()
	if f, ok := s.be.(flusher); ok {
		s.record(f.flushImpl())
	}
}

// write delivers p to the backend, keeping at most one buffer's worth of
// bytes in memory and issuing as few physical writes as possible.
func (s *Stream) write(p []byte) {
	if len(p) == 0 {
		return
	}
	if !s.buffered {
		s.emit(p)
		return
	}
	avail := s.size - len(s.buf)
	if len(p) <= avail {
		s.buf = append(s.buf, p...)
		return
	}
	if len(s.buf) > 0 {
		// Top the buffer up, send it, and continue with an empty buffer.
		s.buf = append(s.buf, p[:avail]...)
		s.flushBuffer()
		s.write(p[avail:])
		return
	}
	// The buffer is empty and p does not fit. Send the largest prefix that is
	// a whole number of buffers in one call and keep the tail.
	direct := len(p) - len(p)%s.size
	s.emit(p[:direct])
	rest := p[direct:]
	if len(rest) > s.size {
		s.emit(rest)
		return
	}
	s.buf = append(s.buf, rest...)
}

func (s *Stream) flushBuffer() {
	if len(s.buf) == 0 {
		return
	}
	s.emit(s.buf)
	s.buf = s.buf[:0]
}

func (s *Stream) emit(p []byte) {
	s.record(s.be.writeImpl(p))
}

// record keeps the first backend error.
func (s *Stream) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}
