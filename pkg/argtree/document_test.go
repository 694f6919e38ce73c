// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const yamlDoc = `schema: "1.0"
name: tool
overview: A tool
options:
  - name: --verbose
    short: -v
    flag: true
subcommands:
  - name: build
    overview: Build sources
    options:
      - name: --all
        short: -a
        flag: true
        usage: Build all targets
      - name: --config
        complete: values
        values:
          - value: debug
            description: Debug build
          - value: release
  - name: run
    positionals:
      - name: target
        complete: func:_targets
`

const tomlDoc = `schema = "1.2.0"
name = "tool"
overview = "A tool"

[[options]]
name = "--verbose"
short = "-v"
flag = true

[[subcommands]]
name = "build"
overview = "Build sources"

  [[subcommands.options]]
  name = "--all"
  short = "-a"
  flag = true
  usage = "Build all targets"

  [[subcommands.options]]
  name = "--config"
  values = [
    { value = "debug", description = "Debug build" },
    { value = "release" },
  ]

[[subcommands]]
name = "run"

  [[subcommands.positionals]]
  name = "target"
  complete = "func:_targets"
`

var treeCmp = cmp.AllowUnexported(Subcommands{})

func TestDecodeFormatsAgree(t *testing.T) {
	fromYAML, err := Decode(strings.NewReader(yamlDoc), FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromTOML, err := Decode(strings.NewReader(tomlDoc), FormatTOML)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	if diff := cmp.Diff(fromYAML, fromTOML, treeCmp); diff != "" {
		t.Errorf("yaml and toml trees differ (-yaml +toml):\n%s", diff)
	}

	if got, want := fromYAML.Subcommands.Names(), []string{"build", "run"}; !cmp.Equal(got, want) {
		t.Errorf("subcommands = %q, want %q", got, want)
	}
	build, _ := fromYAML.Subcommands.Get("build")
	all, _ := build.Option("-a")
	if _, ok := all.Hint.(None); !ok || !all.Flag {
		t.Errorf("--all = %+v, want a flag with no value", all)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		format  Format
		wantErr string
	}{
		{"no schema", "name: tool\n", FormatYAML, "no schema version"},
		{"future schema", "schema: \"2.0\"\nname: tool\n", FormatYAML, "unsupported schema version"},
		{"bad schema", "schema: soon\nname: tool\n", FormatYAML, "invalid schema version"},
		{"unknown yaml key", "schema: \"1\"\nname: tool\ncolor: red\n", FormatYAML, "field color not found"},
		{"unknown toml key", "schema = \"1\"\nname = \"tool\"\ncolor = \"red\"\n", FormatTOML, "unknown keys"},
		{"invalid tree", "schema: \"1\"\nname: tool\noptions:\n  - name: out\n", FormatYAML, "must start with '-'"},
		{"empty", "", FormatYAML, "empty tree document"},
		{"bad hint", "schema: \"1\"\nname: tool\npositionals:\n  - name: x\n    complete: dirs\n", FormatYAML, "unknown completion hint"},
		{"format", "", Format("json"), "unsupported document format"},
		{"duplicate yaml subcommand", "schema: \"1\"\nname: tool\nsubcommands:\n  - name: build\n    overview: first\n  - name: build\n    overview: second\n", FormatYAML, `duplicate subcommand "build"`},
		{"duplicate toml subcommand", "schema = \"1\"\nname = \"tool\"\n[[subcommands]]\nname = \"build\"\n[[subcommands]]\nname = \"build\"\n", FormatTOML, `duplicate subcommand "build"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Decode() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	want, err := Decode(strings.NewReader(yamlDoc), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []Format{FormatYAML, FormatTOML} {
		var buf bytes.Buffer
		if err := Encode(&buf, want, f); err != nil {
			t.Fatalf("Encode(%s): %v", f, err)
		}
		got, err := Decode(&buf, f)
		if err != nil {
			t.Fatalf("Decode(%s): %v\n%s", f, err, buf.String())
		}
		if diff := cmp.Diff(want, got, treeCmp); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", f, diff)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool.yml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	var logs []string
	l := Loader{Logf: func(format string, args ...any) {
		logs = append(logs, format)
	}}
	tree, err := l.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if tree.Count() != 3 {
		t.Errorf("Count() = %d, want 3", tree.Count())
	}
	if len(logs) == 0 {
		t.Error("Loader logged nothing")
	}

	if _, err := Load(filepath.Join(dir, "tool.json")); err == nil {
		t.Error("Load accepted a .json path")
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}
