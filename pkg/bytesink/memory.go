// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

// Memory is a Sink that keeps everything written to it in memory.
type Memory struct {
	Stream
	data []byte
}

// NewMemory returns an empty in-memory sink.
func NewMemory(opts Options) *Memory {
	m := &Memory{}
	m.init(m, opts)
	return m
}

func (m *Memory) writeImpl(p []byte) error {
	m.data = append(m.data, p...)
	return nil
}

// Bytes flushes the sink and returns its content.
func (m *Memory) Bytes() ByteString {
	m.Flush()
	return NewByteString(m.data)
}

// String flushes the sink and returns its content as a string.
func (m *Memory) String() string {
	return m.Bytes().String()
}

// Reset discards the content and rewinds the position to zero.
func (m *Memory) Reset() {
	m.buf = m.buf[:0]
	m.data = m.data[:0]
	m.pos = 0
	m.err = nil
}

// Close flushes the sink. It never fails.
func (m *Memory) Close() error {
	m.Flush()
	return nil
}
