// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package bytesink

import (
	"io"
	"os"
)

// File is a Sink that writes to a file.
type File struct {
	Stream
	path   string
	f      *os.File
	owned  bool
	closed bool
}

// OpenFile creates or truncates the file at path and returns a sink writing
// to it.
func OpenFile(path string, opts Options) (*File, error) {
	osf, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	f := &File{path: path, f: osf, owned: true}
	f.init(f, opts)
	return f, nil
}

func newFD(fd int, name string, opts Options) *File {
	f := &File{path: name, f: os.NewFile(uintptr(fd), name)}
	f.init(f, opts)
	return f
}

func (f *File) Fd() int {
	return int(f.f.Fd())
}

func (f *File) Path() string {
	return f.path
}

func (f *File) writeImpl(p []byte) error {
	if f.closed {
		return ErrClosed
	}
	n, err := f.f.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.Flush()
	f.closed = true
	var cerr error
	if f.owned {
		cerr = f.f.Close()
	}
	if err := f.Err(); err != nil {
		return &IOError{Op: "write", Path: f.path, Err: err}
	}
	if cerr != nil {
		return &IOError{Op: "close", Path: f.path, Err: cerr}
	}
	return nil
}
