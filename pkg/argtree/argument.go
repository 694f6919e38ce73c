// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import "strings"

// Kind distinguishes positional arguments from options.
type Kind int

const (
	Positional Kind = iota
	Option
)

func (k Kind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Option:
		return "option"
	}
	return "unknown"
}

// Argument is a positional argument or an option of a command.
type Argument struct {
	Kind Kind
	// Name is the argument name. For options it includes the leading
	// marker, e.g. "--output".
	Name string
	// Short is an optional one-character alias with its marker, e.g. "-o".
	Short string
	// Usage is a human readable description. It may end in a
	// "[default: ...]" annotation, which generators drop.
	Usage string
	// Hint says how a shell should complete the argument's value. A nil
	// Hint behaves like Unspecified.
	Hint Hint
	// Flag marks a boolean option that takes no value.
	Flag bool
	// Array marks an argument that can be given more than once.
	Array bool
	// Optional marks an option whose value may be omitted, or a positional
	// that may be left out.
	Optional bool
}

// IsOption reports whether a is an option.
func (a Argument) IsOption() bool {
	return a.Kind == Option
}

// TakesValue reports whether the option expects a value.
func (a Argument) TakesValue() bool {
	return !a.Flag
}

// CompletionHint returns the argument's hint, defaulting to Unspecified.
func (a Argument) CompletionHint() Hint {
	if a.Hint == nil {
		return Unspecified{}
	}
	return a.Hint
}

// LongName returns Name without its leading dashes.
func (a Argument) LongName() string {
	return strings.TrimLeft(a.Name, "-")
}

// ShortLetter returns the short alias without its dash, or "".
func (a Argument) ShortLetter() string {
	return strings.TrimLeft(a.Short, "-")
}

// Names returns Name followed by Short if it is set.
func (a Argument) Names() []string {
	if a.Short == "" {
		return []string{a.Name}
	}
	return []string{a.Name, a.Short}
}
