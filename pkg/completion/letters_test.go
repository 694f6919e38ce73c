// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argcomp/pkg/argtree"
	"github.com/yeetrun/argcomp/pkg/bytesink"
	"tailscale.com/util/set"
)

func longOnly(n int) []argtree.Argument {
	opts := make([]argtree.Argument, n)
	for i := range opts {
		opts[i] = argtree.Argument{Kind: argtree.Option, Name: fmt.Sprintf("--opt%d", i), Flag: true}
	}
	return opts
}

func TestShortLettersSkipRealShorts(t *testing.T) {
	opts := []argtree.Argument{
		{Name: "--alpha"},
		{Name: "--bravo", Short: "-a"},
		{Name: "--charlie"},
		{Name: "--delta", Short: "-c"},
		{Name: "--echo"},
	}
	got, err := shortLetters(opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"b", "a", "d", "c", "e"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shortLetters mismatch (-want +got):\n%s", diff)
	}
}

func TestShortLettersSingleLetterNames(t *testing.T) {
	opts := []argtree.Argument{
		{Name: "--alpha", Flag: true},
		{Name: "-a", Flag: true},
		{Name: "--bravo", Short: "-c"},
		{Name: "-b"},
	}
	got, err := shortLetters(opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"d", "a", "c", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("shortLetters mismatch (-want +got):\n%s", diff)
	}

	specs, err := argparseSpecs(opts)
	if err != nil {
		t.Fatal(err)
	}
	wantSpecs := []string{"d/alpha", "a", "c/bravo=", "b="}
	if diff := cmp.Diff(wantSpecs, specs); diff != "" {
		t.Errorf("argparseSpecs mismatch (-want +got):\n%s", diff)
	}
}

func TestShortLettersDistinct(t *testing.T) {
	for _, n := range []int{1, 26, 27, 52} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			got, err := shortLetters(longOnly(n))
			if err != nil {
				t.Fatal(err)
			}
			seen := set.Of(got...)
			if len(seen) != n {
				t.Fatalf("%d options got %d distinct letters: %q", n, len(seen), got)
			}
			for _, l := range got {
				if !strings.Contains(syntheticLetters, l) {
					t.Errorf("letter %q is not in a-z or A-Z", l)
				}
			}
		})
	}
}

func TestShortLettersExhausted(t *testing.T) {
	if _, err := shortLetters(longOnly(53)); err == nil {
		t.Fatal("53 options got letters")
	}

	// Real shorts use up letters too.
	opts := append(longOnly(51), argtree.Argument{Name: "--x", Short: "-a"}, argtree.Argument{Name: "--y", Short: "-b"})
	if _, err := shortLetters(opts); err == nil {
		t.Fatal("51 options got letters with two taken")
	}

	tree := argtree.New("tool", "").AddSubcommand("sub", argtree.New("", ""))
	tree.Options = longOnly(53)
	cv := wantViolation(t, func() {
		Generate(tree, Fish, bytesink.NewMemory(bytesink.Options{}))
	})
	if !strings.Contains(cv.Msg, "no letter left") {
		t.Errorf("violation %q", cv.Msg)
	}
}

func TestArgparseSpecs(t *testing.T) {
	opts := []argtree.Argument{
		{Name: "--verbose", Short: "-v", Flag: true},
		{Name: "--output"},
		{Name: "--tag", Array: true},
		{Name: "--color", Optional: true},
	}
	got, err := argparseSpecs(opts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"v/verbose", "a/output=", "b/tag=+", "c/color=?"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("argparseSpecs mismatch (-want +got):\n%s", diff)
	}
}
