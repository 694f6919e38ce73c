// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argcomp/pkg/argtree"
	"github.com/yeetrun/argcomp/pkg/bytesink"
)

type checkFlagsParsed struct {
	Tree string `flag:"tree" short:"t" help:"Tree document to check" complete:"file"`
}

var errInvalidTree = errors.New("tree document is invalid")

func handleCheck(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "check" {
		args = args[1:]
	}
	result, err := yargs.ParseFlags[checkFlagsParsed](args)
	if err != nil {
		return err
	}
	if result.Flags.Tree == "" {
		return errors.New("check needs --tree")
	}
	return runCheck(bytesink.StdFrom(ctx).Stdout(), result.Flags.Tree)
}

// runCheck loads the document at path and prints a summary of the tree or
// the problems found in it.
func runCheck(w io.Writer, path string) error {
	tree, err := argtree.Loader{Logf: logf}.Load(path)
	if err != nil {
		var problems []*argtree.ValidationError
		collectValidationErrors(err, &problems)
		if len(problems) == 0 {
			return err
		}
		red := color.New(color.FgRed)
		for _, p := range problems {
			red.Fprint(w, "  invalid ")
			fmt.Fprintln(w, p)
		}
		return fmt.Errorf("%s: %w (%d problems)", path, errInvalidTree, len(problems))
	}

	var nodes, options, positionals int
	tree.Walk(func(_ []string, t *argtree.Tree) error {
		nodes++
		options += len(t.Options)
		positionals += len(t.Positionals)
		return nil
	})
	color.New(color.FgGreen).Fprint(w, "ok ")
	fmt.Fprintf(w, "%s: %d commands, %d options, %d positionals\n", tree.Name, nodes, options, positionals)
	return nil
}

func collectValidationErrors(err error, out *[]*argtree.ValidationError) {
	if ve, ok := err.(*argtree.ValidationError); ok {
		*out = append(*out, ve)
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collectValidationErrors(e, out)
		}
		return
	}
	if inner := errors.Unwrap(err); inner != nil {
		collectValidationErrors(inner, out)
	}
}
