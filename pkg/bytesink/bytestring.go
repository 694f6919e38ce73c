// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import (
	"io"
	"strings"
)

// ByteString is an immutable sequence of bytes, typically the finished
// content of a Memory sink. ByteStrings are comparable and can be used as map
// keys.
type ByteString struct {
	s string
}

// NewByteString returns a ByteString holding a copy of b.
func NewByteString(b []byte) ByteString {
	return ByteString{s: string(b)}
}

// ByteStringOf returns a ByteString holding the bytes of s.
func ByteStringOf(s string) ByteString {
	return ByteString{s: s}
}

// Bytes returns a copy of the contents.
func (b ByteString) Bytes() []byte {
	return []byte(b.s)
}

// String returns the contents as a string. The bytes are not required to be
// valid UTF-8.
func (b ByteString) String() string {
	return b.s
}

func (b ByteString) Len() int {
	return len(b.s)
}

// At returns the byte at index i. It panics if i is out of range.
func (b ByteString) At(i int) byte {
	return b.s[i]
}

// Contains reports whether sub occurs within b.
func (b ByteString) Contains(sub string) bool {
	return strings.Contains(b.s, sub)
}

// WriteTo writes the contents to w.
func (b ByteString) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.s)
	return int64(n), err
}
