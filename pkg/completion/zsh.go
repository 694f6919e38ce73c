// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"strings"

	"github.com/yeetrun/argcomp/pkg/argtree"
)

// zsh emits one function per command that hands an argument spec list to
// _arguments. Commands with subcommands add a two state machine: "command"
// completes the subcommand name and "arg" dispatches to its function.
type zsh struct {
	p    printer
	root *argtree.Tree
}

func newZsh(p printer, root *argtree.Tree) *zsh {
	return &zsh{p: p, root: root}
}

func (g *zsh) generate() {
	g.p.printf("# Completion functions for %s.\n", g.root.Name)
	g.p.print("# The file needs this header:\n")
	g.p.print("#\n")
	g.p.printf("#     #compdef %s\n", commandWord(g.root.Name))
	g.p.print("#     local context state state_descr line\n")
	g.p.print("#     typeset -A opt_args\n\n")
	g.node(rootFunc(g.root.Name), g.root.Name, g.root)
}

func (g *zsh) node(fn, label string, t *argtree.Tree) {
	p := g.p
	p.printf("# Generates completions for %s\n", label)
	p.printf("%s() {\n", fn)
	p.print("    local -a arguments\n")
	p.print("    arguments=(\n")
	for _, a := range t.Positionals {
		p.print("        \"", zshPositional(a), "\"\n")
	}
	for _, o := range t.Options {
		p.print("        ", zshOption(o), "\n")
	}
	hasSubs := t.Subcommands.Len() > 0
	if hasSubs {
		p.print("        '(-): :->command'\n")
		p.print("        '(-)*:: :->arg'\n")
	}
	p.print("    )\n")
	p.print("    _arguments $arguments && return\n")

	if hasSubs {
		p.print("    case $state in\n")
		p.print("        (command)\n")
		p.print("            local modes\n")
		p.print("            modes=(\n")
		for name, sub := range t.Subcommands.All() {
			p.printf("                '%s:%s'\n",
				singleQuoted.Replace(zshColon.Replace(name)),
				singleQuoted.Replace(stripDefault(sub.Overview)))
		}
		p.print("            )\n")
		p.print("            _describe \"mode\" modes\n")
		p.print("            ;;\n")
		p.print("        (arg)\n")
		p.print("            case ${words[1]} in\n")
		for name := range t.Subcommands.All() {
			p.printf("                (%s)\n", bashWord(name))
			p.printf("                    %s\n", childFunc(fn, name))
			p.print("                    ;;\n")
		}
		p.print("            esac\n")
		p.print("            ;;\n")
		p.print("    esac\n")
	}
	p.print("}\n\n")

	for name, sub := range t.Subcommands.All() {
		g.node(childFunc(fn, name), label+" "+name, sub)
	}
}

// zshPositional returns the unquoted spec of a positional argument.
func zshPositional(a argtree.Argument) string {
	prefix := ""
	switch {
	case a.Array:
		prefix = "*"
	case a.Optional:
		prefix = ":"
	}
	return prefix + zshAction(a)
}

// zshOption returns the _arguments entry of an option, quoted for an array literal.
//
//	"(--output -o)"{--output,-o}"[Write here]:file:_files"
func zshOption(o argtree.Argument) string {
	var tail strings.Builder
	if d := stripDefault(o.Usage); d != "" {
		tail.WriteString("[" + doubleQuoted.Replace(zshBracketed.Replace(d)) + "]")
	}
	if o.TakesValue() {
		if o.Optional {
			tail.WriteString(":")
		}
		tail.WriteString(zshAction(o))
	}

	names := o.Names()
	star := ""
	if o.Array {
		star = "*"
	}
	if len(names) == 1 {
		return `"` + star + doubleQuoted.Replace(names[0]) + tail.String() + `"`
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = doubleQuoted.Replace(n)
	}
	head := `"(` + strings.Join(quoted, " ") + `)"`
	if o.Array {
		head = `"*"`
	}
	head += "{" + strings.Join(quoted, ",") + "}"
	if tail.Len() == 0 {
		return head
	}
	return head + `"` + tail.String() + `"`
}

// zshAction returns ":message:action" for the value of a.
func zshAction(a argtree.Argument) string {
	msg := stripDefault(a.Usage)
	if msg == "" {
		msg = a.LongName()
	}
	h := &zshHint{msg: doubleQuoted.Replace(zshColon.Replace(msg))}
	a.CompletionHint().Accept(h)
	return h.out
}

type zshHint struct {
	msg string
	out string
}

func (h *zshHint) VisitNone() {
	h.out = ":" + h.msg + ": "
}

// VisitUnspecified keeps the value slot so _arguments still knows the
// argument takes a word, and lets zsh complete it the default way.
func (h *zshHint) VisitUnspecified() {
	h.out = ":" + h.msg + ":_default"
}

func (h *zshHint) VisitFilename() {
	h.out = ":" + h.msg + ":_files"
}

func (h *zshHint) VisitFunction(f argtree.Function) {
	h.out = ":" + h.msg + ":" + f.Name
}

func (h *zshHint) VisitChoices(c argtree.Choices) {
	var b strings.Builder
	b.WriteString(": :{_values ''")
	for _, item := range c.Items {
		v := zshBracketed.Replace(item.Value)
		if d := stripDefault(item.Description); d != "" {
			v += "[" + zshBracketed.Replace(d) + "]"
		}
		b.WriteString(" '" + singleQuoted.Replace(v) + "'")
	}
	b.WriteString("}")
	h.out = doubleQuoted.Replace(b.String())
}
