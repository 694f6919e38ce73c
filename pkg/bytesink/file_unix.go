// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package bytesink

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// File is a Sink that writes to a file descriptor.
type File struct {
	Stream
	path   string
	fd     int
	owned  bool
	closed bool
}

// OpenFile creates or truncates the file at path and returns a sink writing
// to it.
func OpenFile(path string, opts Options) (*File, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC|unix.O_CLOEXEC, 0644)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	f := &File{path: path, fd: fd, owned: true}
	f.init(f, opts)
	return f, nil
}

// newFD returns a sink over an already open descriptor that it does not own.
func newFD(fd int, name string, opts Options) *File {
	f := &File{path: name, fd: fd}
	f.init(f, opts)
	return f
}

// Fd returns the underlying file descriptor.
func (f *File) Fd() int {
	return f.fd
}

func (f *File) Path() string {
	return f.path
}

func (f *File) writeImpl(p []byte) error {
	if f.closed {
		return ErrClosed
	}
	for {
		n, err := unix.Write(f.fd, p)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return err
		}
		if n != len(p) {
			return io.ErrShortWrite
		}
		return nil
	}
}

// Close flushes buffered output and closes the descriptor if the sink opened
// it. A write failure at any point in the sink's life is reported here.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.Flush()
	f.closed = true
	var cerr error
	if f.owned {
		cerr = unix.Close(f.fd)
	}
	if err := f.Err(); err != nil {
		return &IOError{Op: "write", Path: f.path, Err: err}
	}
	if cerr != nil {
		return &IOError{Op: "close", Path: f.path, Err: cerr}
	}
	return nil
}
