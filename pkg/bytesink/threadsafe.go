// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import "sync"

// defaultLock serializes ThreadSafe wrappers around sinks that do not carry
// a lock of their own.
var defaultLock sync.Mutex

// lockSharer is implemented by Stream and so by every backend in this
// package.
type lockSharer interface {
	sinkLock() *sync.Mutex
}

// ThreadSafe is a Sink that serializes every call to an underlying Sink.
type ThreadSafe struct {
	mu   *sync.Mutex
	sink Sink
}

// NewThreadSafe returns a wrapper that makes s safe for concurrent use.
//
// If s is a stream from this package, the wrapper uses that stream's lock, so
// two wrappers around the same stream exclude each other. Wrapping a
// ThreadSafe returns a new wrapper over the same sink and lock. Any other
// Sink is guarded by a process-wide lock.
func NewThreadSafe(s Sink) *ThreadSafe {
	switch v := s.(type) {
	case *ThreadSafe:
		return &ThreadSafe{mu: v.mu, sink: v.sink}
	case lockSharer:
		return &ThreadSafe{mu: v.sinkLock(), sink: s}
	}
	return &ThreadSafe{mu: &defaultLock, sink: s}
}

// Unwrap returns the wrapped sink. Using it directly bypasses the lock.
func (t *ThreadSafe) Unwrap() Sink {
	return t.sink
}

func (t *ThreadSafe) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sink.Write(p)
}

func (t *ThreadSafe) WriteString(s string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sink.WriteString(s)
}

func (t *ThreadSafe) WriteByte(c byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sink.WriteByte(c)
}

func (t *ThreadSafe) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink.Flush()
}

func (t *ThreadSafe) Position() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sink.Position()
}

func (t *ThreadSafe) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sink.Err()
}

// Do runs f with the lock held, so a sequence of writes from f is not
// interleaved with writes from other goroutines.
func (t *ThreadSafe) Do(f func(s Sink)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f(t.sink)
}
