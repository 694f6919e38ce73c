// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argtree describes a command line: a command, its positional
// arguments and options, and its subcommands, each of which is again a Tree.
//
// Trees are plain data. They are built once by the host program and then only
// read, for example by the completion script generator:
//
//	tree := argtree.New("tool", "Does things").
//	    AddOption(argtree.Argument{Name: "--all", Short: "-a", Flag: true, Usage: "Everything"}).
//	    AddSubcommand("build", argtree.New("", "Builds it").
//	        AddOption(argtree.Argument{Name: "--verbose", Flag: true}))
//
// A Tree can also be derived from the same tagged structs the yargs parser
// consumes (FromSchema), or loaded from a YAML or TOML document (Load).
//
// # Struct tags
//
//	type BuildFlags struct {
//	    Jobs    int    `flag:"jobs" short:"j" help:"Parallel jobs" default:"4"`
//	    Config  string `flag:"config" help:"Config file" complete:"file"`
//	    Format  string `flag:"format" complete:"values:json,yaml,text"`
//	    Verbose bool   `flag:"verbose" short:"v"`
//	}
//
//	type BuildArgs struct {
//	    Target  string   `pos:"0" help:"Build target" complete:"func:_tool_targets"`
//	    Extra   []string `pos:"1*" help:"Extra inputs" complete:"file"`
//	}
package argtree
