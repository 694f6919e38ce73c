// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The argcomp command writes shell completion scripts for command trees
// described in YAML or TOML documents, or for itself.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argcomp/pkg/argtree"
	"github.com/yeetrun/argcomp/pkg/bytesink"
	"tailscale.com/types/logger"
)

// logf is replaced by a real logger when --verbose is given.
var logf logger.Logf = logger.Discard

type globalFlagsParsed struct {
	Shell      string `flag:"shell" help:"Shell to generate for: bash, zsh, fish or all (ARGCOMP_SHELL)" complete:"values:bash,zsh,fish,all"`
	BufferSize int    `flag:"buffer-size" help:"Output buffer size in bytes (ARGCOMP_BUFFER_SIZE)" complete:"none"`
	Verbose    bool   `flag:"verbose" short:"v" help:"Log progress to stderr"`
	NoColor    bool   `flag:"no-color" help:"Disable colored output (NO_COLOR)"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func main() {
	if err := loadedPrefs.load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to load preferences: %v", err)
		}
	}
	loadedPrefs.applyEnv()

	std := bytesink.NewStd()
	ctx := bytesink.WithStd(context.Background(), std)
	defer std.Flush()

	globalFlags, remaining, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		printCLIError(std.Stderr(), err)
		os.Exit(1)
	}
	loadedPrefs.applyFlags(globalFlags)
	if globalFlags.Verbose {
		logf = logger.WithPrefix(log.Printf, "argcomp: ")
	}
	if !loadedPrefs.colorEnabled() || !std.StdoutIsTerminal() {
		color.NoColor = true
	}

	handlers := map[string]yargs.SubcommandHandler{
		"generate": handleGenerate,
		"check":    handleCheck,
		"prefs":    handlePrefs,
	}
	if err := yargs.RunSubcommandsWithGroups(ctx, remaining, buildHelpConfig(), globalFlagsParsed{}, handlers, nil); err != nil {
		if errors.Is(err, yargs.ErrShown) {
			return
		}
		printCLIError(std.Stderr(), err)
		std.Flush()
		os.Exit(1)
	}
}

func buildHelpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argcomp",
			Description: "Generate bash, zsh and fish completion scripts from a command tree.",
			Examples: []string{
				"argcomp generate --shell zsh > _argcomp",
				"argcomp generate --tree tool.yaml --shell all --out-dir completions",
				"argcomp check --tree tool.toml",
			},
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			"generate": {
				Name:        "generate",
				Description: "Write a completion script",
				Usage:       "[--tree FILE] [--out FILE | --out-dir DIR] [--zstd] [--body-only]",
				Examples: []string{
					"argcomp generate --shell fish --out ~/.config/fish/completions/argcomp.fish",
				},
			},
			"check": {
				Name:        "check",
				Description: "Load and validate a tree document",
				Usage:       "--tree FILE",
			},
			"prefs": {
				Name:        "prefs",
				Description: "Show or save preferences",
				Usage:       "[--save]",
			},
		},
	}
}

// printCLIError prints err in red.
func printCLIError(w io.Writer, err error) {
	if err == nil {
		return
	}
	color.New(color.FgRed).Fprint(w, "error: ")
	fmt.Fprintln(w, err)
}

type prefsFlagsParsed struct {
	Save bool `flag:"save" help:"Persist the current global flags"`
}

func handlePrefs(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "prefs" {
		args = args[1:]
	}
	result, err := yargs.ParseFlags[prefsFlagsParsed](args)
	if err != nil {
		return err
	}
	std := bytesink.StdFrom(ctx)
	fmt.Fprintln(std.Stdout(), asJSON(loadedPrefs))
	if result.Flags.Save {
		if !loadedPrefs.changed {
			fmt.Fprintln(std.Stderr(), "No changes to save")
			return nil
		}
		if err := loadedPrefs.save(); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}
		fmt.Fprintln(std.Stderr(), "Prefs saved")
	} else if loadedPrefs.changed {
		fmt.Fprintln(std.Stderr(), "Use --save to save the prefs")
	}
	return nil
}

func asJSON(v any) string {
	j, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(j)
}

// loadTree returns the tree document at path, or argcomp's own tree when
// path is empty.
func loadTree(path string) (*argtree.Tree, error) {
	if path == "" {
		return selfTree(), nil
	}
	return argtree.Loader{Logf: logf}.Load(path)
}
