// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"fmt"
	"strings"

	"github.com/yeetrun/argcomp/pkg/argtree"
	"github.com/yeetrun/argcomp/pkg/bytesink"
	"tailscale.com/util/must"
	"tailscale.com/util/set"
)

// ContractViolation is the panic value of Generate for trees that cannot be
// turned into a script.
type ContractViolation struct {
	Msg string
}

func (e *ContractViolation) Error() string {
	return "completion: " + e.Msg
}

func violation(format string, args ...any) error {
	return &ContractViolation{Msg: fmt.Sprintf(format, args...)}
}

// Generate writes the completion functions for tree and all of its
// subcommands in dialect d to s. It does not flush s.
func Generate(tree *argtree.Tree, d Dialect, s bytesink.Sink) {
	must.Do(checkTree(tree))
	p := printer{s: s}
	switch d {
	case Bash:
		newBash(p, tree).generate()
	case Zsh:
		newZsh(p, tree).generate()
	case Fish:
		newFish(p, tree).generate()
	default:
		panic(violation("unknown dialect %v", d))
	}
}

// checkTree reports the tree shapes no dialect can express.
func checkTree(tree *argtree.Tree) error {
	if tree == nil || strings.TrimSpace(tree.Name) == "" {
		return violation("the top-level command has no name")
	}
	onPath := make(set.Set[*argtree.Tree])
	var check func(label string, t *argtree.Tree) error
	check = func(label string, t *argtree.Tree) error {
		if onPath.Contains(t) {
			return violation("%s: subcommand refers back to an ancestor", label)
		}
		onPath.Add(t)
		defer onPath.Delete(t)

		shorts := make(set.Set[string])
		for _, o := range t.Options {
			if o.Short == "" {
				continue
			}
			if shorts.Contains(o.Short) {
				return violation("%s: short name %s is used twice", label, o.Short)
			}
			shorts.Add(o.Short)
		}
		for name, sub := range t.Subcommands.All() {
			if sub == nil {
				return violation("%s: subcommand %q has no tree", label, name)
			}
			if err := check(label+" "+name, sub); err != nil {
				return err
			}
		}
		return nil
	}
	return check(tree.Name, tree)
}

// rootFunc returns the function name of the top-level command:
// "swift package" becomes "_swift_package".
func rootFunc(name string) string {
	return "_" + strings.ReplaceAll(name, " ", "_")
}

func childFunc(parent, sub string) string {
	return parent + "_" + sub
}

// commandWord is the executable a completion is registered for.
func commandWord(name string) string {
	return strings.Fields(name)[0]
}

// commandWords is the number of words that invoke the top-level command.
func commandWords(name string) int {
	return len(strings.Fields(name))
}

type printer struct {
	s bytesink.Sink
}

func (p printer) print(ss ...string) {
	for _, s := range ss {
		p.s.WriteString(s)
	}
}

func (p printer) printf(format string, args ...any) {
	fmt.Fprintf(p.s, format, args...)
}
