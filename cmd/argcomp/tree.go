// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/yeetrun/argcomp/pkg/argtree"
	"tailscale.com/util/must"
)

// selfTree describes argcomp's own command line. It is built from the same
// flag structs the subcommand handlers parse, so the completions cannot
// drift from the flags. Global flags are accepted after any subcommand and
// are offered there too.
func selfTree() *argtree.Tree {
	help := buildHelpConfig()
	root := must.Get(argtree.FromSchema("argcomp", help.Command.Description, globalFlagsParsed{}, nil))
	globals := root.Options

	sub := func(name string, flags any) *argtree.Tree {
		t := must.Get(argtree.FromSchema(name, help.SubCommands[name].Description, flags, nil))
		t.Options = append(t.Options, globals...)
		return t
	}
	root.AddSubcommand("generate", sub("generate", generateFlagsParsed{}))
	root.AddSubcommand("check", sub("check", checkFlagsParsed{}))
	root.AddSubcommand("prefs", sub("prefs", prefsFlagsParsed{}))
	return root
}
