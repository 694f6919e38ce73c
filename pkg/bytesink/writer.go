// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import "io"

// Writer is a Sink over an arbitrary io.Writer.
type Writer struct {
	Stream
	w io.Writer
}

// NewWriter returns a Sink that writes to w.
func NewWriter(w io.Writer, opts Options) *Writer {
	sw := &Writer{w: w}
	sw.init(sw, opts)
	return sw
}

func (w *Writer) writeImpl(p []byte) error {
	n, err := w.w.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

func (w *Writer) flushImpl() error {
	if f, ok := w.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes the sink and closes the underlying writer if it is an
// io.Closer. Any earlier write failure is returned as an *IOError.
func (w *Writer) Close() error {
	w.Flush()
	var cerr error
	if c, ok := w.w.(io.Closer); ok {
		cerr = c.Close()
	}
	if err := w.Err(); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	if cerr != nil {
		return &IOError{Op: "close", Err: cerr}
	}
	return nil
}
