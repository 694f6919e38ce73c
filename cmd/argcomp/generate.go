// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shayne/yargs"
	"github.com/yeetrun/argcomp/pkg/argtree"
	"github.com/yeetrun/argcomp/pkg/bytesink"
	"github.com/yeetrun/argcomp/pkg/completion"
	"golang.org/x/sync/errgroup"
)

type generateFlagsParsed struct {
	Tree     string `flag:"tree" short:"t" help:"Tree document (.yaml, .yml or .toml); argcomp's own tree if empty" complete:"file"`
	Out      string `flag:"out" short:"o" help:"Write the script to this file instead of stdout" complete:"file"`
	OutDir   string `flag:"out-dir" help:"Write one script per shell into this directory" complete:"file"`
	Zstd     bool   `flag:"zstd" help:"Compress written files with zstd"`
	BodyOnly bool   `flag:"body-only" help:"Write only the completion functions, without prologue and epilogue"`
}

type generateOptions struct {
	Tree       *argtree.Tree
	Dialects   []completion.Dialect
	Out        string
	OutDir     string
	Zstd       bool
	BodyOnly   bool
	BufferSize int
}

func handleGenerate(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "generate" {
		args = args[1:]
	}
	result, err := yargs.ParseFlags[generateFlagsParsed](args)
	if err != nil {
		return err
	}
	if len(result.Args) > 0 {
		return fmt.Errorf("generate takes no arguments, got %q", result.Args)
	}
	dialects, err := resolveDialects(loadedPrefs.defaultShell())
	if err != nil {
		return err
	}
	tree, err := loadTree(result.Flags.Tree)
	if err != nil {
		return err
	}
	return runGenerate(ctx, generateOptions{
		Tree:       tree,
		Dialects:   dialects,
		Out:        result.Flags.Out,
		OutDir:     result.Flags.OutDir,
		Zstd:       result.Flags.Zstd,
		BodyOnly:   result.Flags.BodyOnly,
		BufferSize: loadedPrefs.bufferSize(),
	})
}

// resolveDialects turns a --shell value into dialects; "all" means every
// supported shell.
func resolveDialects(shell string) ([]completion.Dialect, error) {
	if strings.EqualFold(shell, "all") {
		return completion.Dialects(), nil
	}
	d, err := completion.ParseDialect(shell)
	if err != nil {
		return nil, err
	}
	return []completion.Dialect{d}, nil
}

func runGenerate(ctx context.Context, o generateOptions) error {
	opts := bytesink.Options{BufferSize: o.BufferSize}
	switch {
	case o.Out != "" && o.OutDir != "":
		return errors.New("--out and --out-dir cannot be used together")
	case o.OutDir != "":
		if err := os.MkdirAll(o.OutDir, 0o755); err != nil {
			return err
		}
		g, ctx := errgroup.WithContext(ctx)
		for _, d := range o.Dialects {
			path := filepath.Join(o.OutDir, scriptName(o.Tree, d, o.Zstd))
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return writeScriptFile(o.Tree, d, path, o.Zstd, o.BodyOnly, opts)
			})
		}
		return g.Wait()
	case len(o.Dialects) != 1:
		return errors.New("more than one shell needs --out-dir")
	case o.Out != "":
		return writeScriptFile(o.Tree, o.Dialects[0], o.Out, o.Zstd, o.BodyOnly, opts)
	}
	if o.Zstd {
		return errors.New("--zstd needs --out or --out-dir")
	}
	s := bytesink.NewWriter(bytesink.StdFrom(ctx).Stdout(), opts)
	if err := writeScript(o.Tree, o.Dialects[0], s, o.BodyOnly); err != nil {
		return err
	}
	s.Flush()
	if err := s.Err(); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}

// scriptName is the conventional file name of a completion script.
func scriptName(tree *argtree.Tree, d completion.Dialect, compressed bool) string {
	cmd := strings.Fields(tree.Name)[0]
	var name string
	switch d {
	case completion.Zsh:
		name = "_" + cmd
	default:
		name = cmd + "." + d.String()
	}
	if compressed {
		name += ".zst"
	}
	return name
}

type outputSink interface {
	bytesink.Sink
	Close() error
}

func openOutput(path string, compressed bool, opts bytesink.Options) (outputSink, error) {
	if compressed {
		z, err := bytesink.OpenZstd(path, opts)
		if err != nil {
			return nil, err
		}
		return z, nil
	}
	f, err := bytesink.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func writeScriptFile(tree *argtree.Tree, d completion.Dialect, path string, compressed, bodyOnly bool, opts bytesink.Options) error {
	s, err := openOutput(path, compressed, opts)
	if err != nil {
		return err
	}
	if err := writeScript(tree, d, s, bodyOnly); err != nil {
		s.Close()
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	logf("wrote %v completion for %s to %s (%d bytes)", d, tree.Name, path, s.Position())
	return nil
}

// writeScript generates into s and turns a rejected tree into an error.
func writeScript(tree *argtree.Tree, d completion.Dialect, s bytesink.Sink, bodyOnly bool) (err error) {
	defer func() {
		if r := recover(); r != nil {
			cv, ok := r.(*completion.ContractViolation)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("cannot generate %v completion: %w", d, cv)
		}
	}()
	if bodyOnly {
		completion.Generate(tree, d, s)
	} else {
		completion.WriteScript(tree, d, s)
	}
	return nil
}
