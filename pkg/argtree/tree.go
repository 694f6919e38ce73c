// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"iter"
	"slices"

	"tailscale.com/util/mak"
)

// Tree describes a command: its positional arguments, its options and its
// subcommands.
type Tree struct {
	// Name is the command name. It may contain spaces for commands invoked
	// as several words, such as "swift package". Only the root of a tree
	// needs a name; subcommands are named by their parent.
	Name string
	// Overview is a one-line description.
	Overview string
	// Positionals are consumed left to right.
	Positionals []Argument
	Options     []Argument
	Subcommands Subcommands
}

// New returns a Tree with the given name and overview.
func New(name, overview string) *Tree {
	return &Tree{Name: name, Overview: overview}
}

// AddPositional appends a positional argument and returns t.
func (t *Tree) AddPositional(a Argument) *Tree {
	a.Kind = Positional
	t.Positionals = append(t.Positionals, a)
	return t
}

// AddOption appends an option and returns t.
func (t *Tree) AddOption(a Argument) *Tree {
	a.Kind = Option
	t.Options = append(t.Options, a)
	return t
}

// AddSubcommand adds sub under name and returns t. A sub without a name
// takes name.
func (t *Tree) AddSubcommand(name string, sub *Tree) *Tree {
	if sub.Name == "" {
		sub.Name = name
	}
	t.Subcommands.Add(name, sub)
	return t
}

// Option returns the option whose name or short alias is name.
func (t *Tree) Option(name string) (Argument, bool) {
	for _, o := range t.Options {
		if o.Name == name || (o.Short != "" && o.Short == name) {
			return o, true
		}
	}
	return Argument{}, false
}

// Walk calls fn for t and every subcommand below it, depth first, parents
// before children and siblings in insertion order. path holds the
// subcommand names leading to node and is empty for t itself. Walk stops at
// the first error fn returns.
func (t *Tree) Walk(fn func(path []string, node *Tree) error) error {
	return t.walk(nil, fn)
}

func (t *Tree) walk(path []string, fn func([]string, *Tree) error) error {
	if err := fn(path, t); err != nil {
		return err
	}
	for name, sub := range t.Subcommands.All() {
		if err := sub.walk(append(slices.Clip(path), name), fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree, t included.
func (t *Tree) Count() int {
	n := 0
	t.Walk(func([]string, *Tree) error {
		n++
		return nil
	})
	return n
}

// Subcommands maps subcommand names to trees and remembers the order in
// which they were added. The zero value is an empty mapping.
type Subcommands struct {
	names []string
	trees map[string]*Tree
}

// Add adds or replaces the subcommand name. A replaced subcommand keeps its
// position.
func (s *Subcommands) Add(name string, t *Tree) {
	if _, ok := s.trees[name]; !ok {
		s.names = append(s.names, name)
	}
	mak.Set(&s.trees, name, t)
}

// Get returns the subcommand called name.
func (s Subcommands) Get(name string) (*Tree, bool) {
	t, ok := s.trees[name]
	return t, ok
}

func (s Subcommands) Len() int {
	return len(s.names)
}

// Names returns the subcommand names in insertion order.
func (s Subcommands) Names() []string {
	return slices.Clone(s.names)
}

// All iterates over the subcommands in insertion order.
func (s Subcommands) All() iter.Seq2[string, *Tree] {
	return func(yield func(string, *Tree) bool) {
		for _, name := range s.names {
			if !yield(name, s.trees[name]) {
				return
			}
		}
	}
}
