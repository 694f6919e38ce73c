// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bytesink provides buffered byte output over pluggable backends.
//
// A Stream accumulates writes in a fixed-capacity buffer and hands them to its
// backend in as few physical writes as possible:
//
//	m := bytesink.NewMemory(bytesink.Options{})
//	m.WriteString("hello ")
//	m.Write([]byte("world"))
//	fmt.Println(m.Bytes()) // "hello world"
//
// Writes never fail at the call site. The first backend failure is kept as a
// sticky error and reported later by Err or by the backend's Close, so a
// producer can write everything it has and check once at the end:
//
//	f, err := bytesink.OpenFile("out.sh", bytesink.Options{})
//	if err != nil {
//	    return err
//	}
//	generate(f)
//	if err := f.Close(); err != nil {
//	    return err // *bytesink.IOError
//	}
//
// # Backends
//
//   - Memory keeps the output in memory and exposes it as a ByteString.
//   - File writes to a file descriptor, retrying only on EINTR.
//   - Writer adapts any io.Writer.
//   - Zstd compresses into a file with zstd.
//
// # Concurrency
//
// Streams are not safe for concurrent use. Wrap a sink with NewThreadSafe to
// share it between goroutines. Wrappers around the same Stream share its lock,
// so they serialize against each other as well. The process standard output
// and error sinks are available through Std, which is carried in a context
// rather than held in globals.
package bytesink
