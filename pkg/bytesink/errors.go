// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bytesink

import (
	"errors"
	"fmt"
)

// ErrClosed is recorded when a sink is written after Close.
var ErrClosed = errors.New("bytesink: sink is closed")

// IOError reports a failed operation on a sink backend. Write failures are
// reported lazily, by Close, after all buffered output has been attempted.
type IOError struct {
	Op   string // "open", "write" or "close"
	Path string // empty for backends without a path
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
