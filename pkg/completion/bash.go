// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"strings"

	"github.com/yeetrun/argcomp/pkg/argtree"
)

// bash emits one function per command. The function takes the index of the
// command's first argument word and relies on $cur and $prev being set by
// its caller.
//
// Positionals are matched by index before anything else, so options are
// only offered once every positional slot has been passed.
type bash struct {
	p    printer
	root *argtree.Tree
}

func newBash(p printer, root *argtree.Tree) *bash {
	return &bash{p: p, root: root}
}

func (g *bash) generate() {
	g.p.printf("# Completion functions for %s.\n", g.root.Name)
	g.p.printf("# The caller sets cur and prev and calls %s with the index of the\n", rootFunc(g.root.Name))
	g.p.print("# first argument word. Filename completion needs bash-completion.\n\n")
	g.node(rootFunc(g.root.Name), g.root.Name, g.root)
}

func (g *bash) node(fn, label string, t *argtree.Tree) {
	p := g.p
	p.printf("# Generates completions for %s\n", label)
	p.print("#\n")
	p.print("# Parameters\n")
	p.print("# - the start position of this parser; set to 1 if unknown\n")
	p.printf("function %s\n{\n", fn)

	for i, a := range t.Positionals {
		if _, ok := a.CompletionHint().(argtree.Unspecified); ok {
			continue
		}
		p.printf("    if [[ $COMP_CWORD == $(($1+%d)) ]]; then\n", i)
		a.CompletionHint().Accept(&bashHint{p: p, indent: "        "})
		p.print("    fi\n")
	}

	words := bashCandidates(t)
	p.print("    if [[ $COMP_CWORD == $1 ]]; then\n")
	p.printf("        COMPREPLY=( $(compgen -W \"%s\" -- $cur) )\n", words)
	p.print("        return\n")
	p.print("    fi\n")

	var valued []argtree.Argument
	for _, o := range t.Options {
		if o.TakesValue() {
			valued = append(valued, o)
		}
	}
	if len(valued) > 0 {
		p.print("    case $prev in\n")
		for _, o := range valued {
			pats := make([]string, 0, 2)
			for _, n := range o.Names() {
				pats = append(pats, bashWord(n))
			}
			p.printf("        (%s)\n", strings.Join(pats, "|"))
			o.CompletionHint().Accept(&bashHint{p: p, indent: "            "})
			p.print("            ;;\n")
		}
		p.print("    esac\n")
	}

	if t.Subcommands.Len() > 0 {
		p.print("    case ${COMP_WORDS[$1]} in\n")
		for name := range t.Subcommands.All() {
			p.printf("        (%s)\n", bashWord(name))
			p.printf("            %s $(($1+1))\n", childFunc(fn, name))
			p.print("            return\n")
			p.print("            ;;\n")
		}
		p.print("    esac\n")
	}

	p.printf("    COMPREPLY=( $(compgen -W \"%s\" -- $cur) )\n", words)
	p.print("}\n\n")

	for name, sub := range t.Subcommands.All() {
		g.node(childFunc(fn, name), label+" "+name, sub)
	}
}

// bashCandidates is the word list offered at the command's first argument:
// subcommand names, then option names and their short aliases.
func bashCandidates(t *argtree.Tree) string {
	var words []string
	for name := range t.Subcommands.All() {
		words = append(words, doubleQuoted.Replace(name))
	}
	for _, o := range t.Options {
		for _, n := range o.Names() {
			words = append(words, doubleQuoted.Replace(n))
		}
	}
	return strings.Join(words, " ")
}

type bashHint struct {
	p      printer
	indent string
}

func (h *bashHint) VisitNone() {
	h.p.print(h.indent, "return\n")
}

// VisitUnspecified leaves the word to the default completion registered
// with complete -o default. Positionals without a hint never get here.
func (h *bashHint) VisitUnspecified() {
	h.p.print(h.indent, "return\n")
}

func (h *bashHint) VisitChoices(c argtree.Choices) {
	values := make([]string, len(c.Items))
	for i, item := range c.Items {
		values[i] = doubleQuoted.Replace(item.Value)
	}
	h.p.printf("%sCOMPREPLY=( $(compgen -W \"%s\" -- $cur) )\n", h.indent, strings.Join(values, " "))
	h.p.print(h.indent, "return\n")
}

func (h *bashHint) VisitFilename() {
	h.p.print(h.indent, "_filedir\n")
	h.p.print(h.indent, "return\n")
}

func (h *bashHint) VisitFunction(f argtree.Function) {
	h.p.print(h.indent, f.Name, "\n")
	h.p.print(h.indent, "return\n")
}
