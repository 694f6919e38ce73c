// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argcomp/pkg/argtree"
)

func TestZshOutput(t *testing.T) {
	want := `# Completion functions for tool.
# The file needs this header:
#
#     #compdef tool
#     local context state state_descr line
#     typeset -A opt_args

# Generates completions for tool
_tool() {
    local -a arguments
    arguments=(
        "(--all -a)"{--all,-a}
        '(-): :->command'
        '(-)*:: :->arg'
    )
    _arguments $arguments && return
    case $state in
        (command)
            local modes
            modes=(
                'build:Builds it'
            )
            _describe "mode" modes
            ;;
        (arg)
            case ${words[1]} in
                (build)
                    _tool_build
                    ;;
            esac
            ;;
    esac
}

# Generates completions for tool build
_tool_build() {
    local -a arguments
    arguments=(
        "--verbose"
    )
    _arguments $arguments && return
}

`
	if diff := cmp.Diff(want, generate(t, toolTree(), Zsh)); diff != "" {
		t.Errorf("zsh output mismatch (-want +got):\n%s", diff)
	}
}

func TestZshSpecs(t *testing.T) {
	tests := []struct {
		name string
		arg  argtree.Argument
		want string
	}{
		{
			name: "flag",
			arg:  argtree.Argument{Kind: argtree.Option, Name: "--all", Short: "-a", Flag: true, Usage: "Everything"},
			want: `"(--all -a)"{--all,-a}"[Everything]"`,
		},
		{
			name: "file",
			arg:  argtree.Argument{Kind: argtree.Option, Name: "--output", Short: "-o", Usage: "Write here", Hint: argtree.Filename{}},
			want: `"(--output -o)"{--output,-o}"[Write here]:Write here:_files"`,
		},
		{
			name: "array",
			arg:  argtree.Argument{Kind: argtree.Option, Name: "--tag", Short: "-t", Array: true, Hint: argtree.None{}},
			want: `"*"{--tag,-t}":tag: "`,
		},
		{
			name: "optional value",
			arg:  argtree.Argument{Kind: argtree.Option, Name: "--color", Optional: true, Hint: argtree.Function{Name: "_colors"}},
			want: `"--color::color:_colors"`,
		},
		{
			name: "unspecified",
			arg:  argtree.Argument{Kind: argtree.Option, Name: "--name", Usage: "Name: full"},
			want: `"--name[Name: full]:Name\\: full:_default"`,
		},
		{
			name: "values",
			arg: argtree.Argument{Kind: argtree.Option, Name: "--mode", Hint: argtree.Choices{Items: []argtree.Choice{
				{Value: "fast", Description: "Go fast"},
				{Value: "slow"},
			}}},
			want: `"--mode: :{_values '' 'fast[Go fast]' 'slow'}"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := zshOption(tt.arg); got != tt.want {
				t.Errorf("zshOption() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestZshPositional(t *testing.T) {
	tests := []struct {
		arg  argtree.Argument
		want string
	}{
		{argtree.Argument{Name: "src", Hint: argtree.Filename{}}, ":src:_files"},
		{argtree.Argument{Name: "dst", Optional: true, Hint: argtree.Filename{}}, "::dst:_files"},
		{argtree.Argument{Name: "rest", Array: true, Usage: "More", Hint: argtree.None{}}, "*:More: "},
	}
	for _, tt := range tests {
		if got := zshPositional(tt.arg); got != tt.want {
			t.Errorf("zshPositional(%s) = %q, want %q", tt.arg.Name, got, tt.want)
		}
	}
}
