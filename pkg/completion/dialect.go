// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"fmt"
	"strings"
)

// Dialect is a target shell.
type Dialect int

const (
	Bash Dialect = iota
	Zsh
	Fish
)

func (d Dialect) String() string {
	switch d {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	case Fish:
		return "fish"
	}
	return fmt.Sprintf("Dialect(%d)", int(d))
}

// Dialects returns every supported dialect.
func Dialects() []Dialect {
	return []Dialect{Bash, Zsh, Fish}
}

// ParseDialect returns the dialect called name, ignoring case.
func ParseDialect(name string) (Dialect, error) {
	for _, d := range Dialects() {
		if strings.EqualFold(name, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown shell %q (want bash, zsh or fish)", name)
}
