// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"strings"

	"github.com/yeetrun/argcomp/pkg/argtree"
	"tailscale.com/util/must"
)

// fish has neither positional completion nor a subcommand state, so every
// command with subcommands gets two predicates:
//
//	__fish<fn>_needs_command   succeeds while no subcommand has been typed,
//	                           and otherwise prints the words after this
//	                           command's options
//	__fish<fn>_using_command   succeeds if the typed subcommand is one of its
//	                           arguments
//
// The needs predicate strips options with argparse, which wants a short
// letter for every option, so options without one get a synthetic letter.
type fish struct {
	p    printer
	root *argtree.Tree
	cmd  string
}

func newFish(p printer, root *argtree.Tree) *fish {
	return &fish{p: p, root: root, cmd: commandWord(root.Name)}
}

// fishParent is the command a fish node was reached from.
type fishParent struct {
	fn   string
	name string
}

func (g *fish) generate() {
	g.p.printf("# fish completion for %s.\n", g.root.Name)
	g.p.printf("# Source it or save it as ~/.config/fish/completions/%s.fish.\n\n", g.cmd)
	g.node(rootFunc(g.root.Name), g.root.Name, g.root, nil)
}

func needsFunc(fn string) string { return "__fish" + fn + "_needs_command" }
func usingFunc(fn string) string { return "__fish" + fn + "_using_command" }

func (g *fish) node(fn, label string, t *argtree.Tree, parent *fishParent) {
	p := g.p
	p.printf("# Completions for %s\n", label)
	hasSubs := t.Subcommands.Len() > 0
	if hasSubs {
		g.helpers(fn, t, parent)
	}

	var base []string
	if parent != nil {
		base = append(base, usingFunc(parent.fn)+" "+fishToken.Replace(parent.name))
	}
	optConds := base
	if parent != nil && hasSubs {
		optConds = append(optConds[:len(optConds):len(optConds)], needsFunc(fn))
	}
	for _, o := range t.Options {
		g.option(optConds, o)
	}

	subConds := append(base[:len(base):len(base)], needsFunc(fn))
	for name, sub := range t.Subcommands.All() {
		p.print("complete -c ", g.cmd)
		p.print(" -n ", fishQuote(strings.Join(subConds, "; and ")))
		p.print(" -f -a ", fishQuote(fishToken.Replace(name)))
		if d := stripDefault(sub.Overview); d != "" {
			p.print(" -d ", fishQuote(d))
		}
		p.print("\n")
	}
	p.print("\n")

	for name, sub := range t.Subcommands.All() {
		g.node(childFunc(fn, name), label+" "+name, sub, &fishParent{fn: fn, name: name})
	}
}

func (g *fish) helpers(fn string, t *argtree.Tree, parent *fishParent) {
	p := g.p
	specs := must.Get(argparseSpecs(t.Options))

	p.printf("function %s\n", needsFunc(fn))
	if parent == nil {
		p.print("    set -l cmd (commandline -opc)\n")
		if n := commandWords(g.root.Name); n > 1 {
			p.printf("    set -e cmd[1..%d]\n", n)
		} else {
			p.print("    set -e cmd[1]\n")
		}
	} else {
		p.printf("    set -l cmd (%s)\n", needsFunc(parent.fn))
		p.print("    set -e cmd[1]\n")
	}
	p.print("    argparse -s")
	for _, s := range specs {
		p.print(" ", s)
	}
	p.print(" -- $cmd 2>/dev/null\n")
	p.print("    or return 0\n")
	p.print("    if set -q argv[1]\n")
	p.print("        printf '%s\\n' $argv\n")
	p.print("        return 1\n")
	p.print("    end\n")
	p.print("    return 0\n")
	p.print("end\n\n")

	p.printf("function %s\n", usingFunc(fn))
	if parent != nil {
		p.printf("    %s %s\n", usingFunc(parent.fn), fishToken.Replace(parent.name))
		p.print("    or return 1\n")
	}
	p.printf("    set -l cmd (%s)\n", needsFunc(fn))
	p.print("    test -z \"$cmd\"\n")
	p.print("    and return 1\n")
	p.print("    contains -- $cmd[1] $argv\n")
	p.print("end\n\n")
}

func (g *fish) option(conds []string, o argtree.Argument) {
	p := g.p
	p.print("complete -c ", g.cmd)
	if len(conds) > 0 {
		p.print(" -n ", fishQuote(strings.Join(conds, "; and ")))
	}
	switch long := o.LongName(); {
	case strings.HasPrefix(o.Name, "--"):
		p.print(" -l ", long)
	case len(long) == 1:
		p.print(" -s ", long)
	default:
		p.print(" -o ", long)
	}
	if s := o.ShortLetter(); s != "" {
		p.print(" -s ", s)
	}
	if d := stripDefault(o.Usage); d != "" {
		p.print(" -d ", fishQuote(d))
	}
	if o.TakesValue() {
		p.print(" -r")
		o.CompletionHint().Accept(&fishHint{p: p})
	}
	p.print("\n")
}

type fishHint struct {
	p printer
}

func (h *fishHint) VisitNone() {
	h.p.print(" -f")
}

func (h *fishHint) VisitUnspecified() {}

func (h *fishHint) VisitFilename() {
	h.p.print(" -F")
}

func (h *fishHint) VisitFunction(f argtree.Function) {
	h.p.print(" -f -a ", fishQuote("("+f.Name+")"))
}

func (h *fishHint) VisitChoices(c argtree.Choices) {
	tokens := make([]string, len(c.Items))
	for i, item := range c.Items {
		tokens[i] = fishToken.Replace(item.Value)
		if d := stripDefault(item.Description); d != "" {
			tokens[i] += `\t` + fishToken.Replace(d)
		}
	}
	h.p.print(" -f -a ", fishQuote(strings.Join(tokens, " ")))
}
