// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Zstd is a Sink that zstd-compresses its output into a file.
type Zstd struct {
	Stream
	file   *File
	enc    *zstd.Encoder
	closed bool
}

// OpenZstd creates or truncates the file at path and returns a sink that
// writes a zstd stream to it.
func OpenZstd(path string, opts Options) (*Zstd, error) {
	f, err := OpenFile(path, Options{})
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	z := &Zstd{file: f, enc: enc}
	z.init(z, opts)
	return z, nil
}

func (z *Zstd) writeImpl(p []byte) error {
	if z.closed {
		return ErrClosed
	}
	_, err := z.enc.Write(p)
	return err
}

// flushImpl ends the current zstd block so that everything written so far
// can be decoded from the file.
func (z *Zstd) flushImpl() error {
	if z.closed {
		return nil
	}
	if err := z.enc.Flush(); err != nil {
		return err
	}
	z.file.Flush()
	return z.file.Err()
}

// Close flushes pending output, finishes the zstd frame and closes the file.
func (z *Zstd) Close() error {
	if z.closed {
		return nil
	}
	z.flushBuffer()
	z.closed = true
	z.record(z.enc.Close())
	ferr := z.file.Close()
	if err := z.Err(); err != nil {
		return &IOError{Op: "write", Path: z.file.Path(), Err: err}
	}
	return ferr
}
