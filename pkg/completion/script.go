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
)

// Prologue returns the text that goes before the output of Generate in a
// complete script for tree.
func Prologue(d Dialect, tree *argtree.Tree) string {
	must.Do(checkTree(tree))
	var b strings.Builder
	switch d {
	case Bash:
		fmt.Fprintf(&b, "# bash completion for %s\n\n", tree.Name)
	case Zsh:
		fmt.Fprintf(&b, "#compdef %s\n", commandWord(tree.Name))
		b.WriteString("local context state state_descr line\n")
		b.WriteString("typeset -A opt_args\n\n")
	case Fish:
	default:
		panic(violation("unknown dialect %v", d))
	}
	return b.String()
}

// Epilogue returns the text that goes after the output of Generate in a
// complete script for tree. For bash it is the function registered with
// complete, for zsh the call that starts completion.
func Epilogue(d Dialect, tree *argtree.Tree) string {
	must.Do(checkTree(tree))
	fn := rootFunc(tree.Name)
	var b strings.Builder
	switch d {
	case Bash:
		entry := "__argcomp" + fn
		fmt.Fprintf(&b, "%s()\n{\n", entry)
		b.WriteString("    local cur prev\n")
		b.WriteString("    COMPREPLY=()\n")
		b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
		b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
		fmt.Fprintf(&b, "    %s %d\n", fn, commandWords(tree.Name))
		b.WriteString("}\n\n")
		fmt.Fprintf(&b, "complete -o default -F %s %s\n", entry, commandWord(tree.Name))
	case Zsh:
		fmt.Fprintf(&b, "%s \"$@\"\n", fn)
	case Fish:
	default:
		panic(violation("unknown dialect %v", d))
	}
	return b.String()
}

// WriteScript writes a complete, sourceable completion script for tree to
// s. It does not flush s.
func WriteScript(tree *argtree.Tree, d Dialect, s bytesink.Sink) {
	prologue := Prologue(d, tree)
	epilogue := Epilogue(d, tree)
	s.WriteString(prologue)
	Generate(tree, d, s)
	s.WriteString(epilogue)
}
