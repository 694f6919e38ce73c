// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"github.com/yeetrun/argcomp/pkg/argtree"
	"tailscale.com/util/set"
)

const syntheticLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// shortLetters returns one argparse letter per option: its own short name
// or single-letter name if it has one, otherwise the first letter of a-z then A-Z that no option
// of the command uses and that has not been handed out yet.
func shortLetters(opts []argtree.Argument) ([]string, error) {
	taken := make(set.Set[string])
	for _, o := range opts {
		if l := o.ShortLetter(); l != "" {
			taken.Add(l)
		}
		if l := singleLetterName(o); l != "" {
			taken.Add(l)
		}
	}
	out := make([]string, len(opts))
	next := 0
	for i, o := range opts {
		if l := o.ShortLetter(); l != "" {
			out[i] = l
			continue
		}
		if l := singleLetterName(o); l != "" {
			out[i] = l
			continue
		}
		for next < len(syntheticLetters) && taken.Contains(syntheticLetters[next:next+1]) {
			next++
		}
		if next == len(syntheticLetters) {
			return nil, violation("option %s: no letter left for a synthetic short name", o.Name)
		}
		out[i] = syntheticLetters[next : next+1]
		taken.Add(out[i])
		next++
	}
	return out, nil
}

// singleLetterName returns the letter of an option named like "-v", which
// argparse can only take as a short name.
func singleLetterName(o argtree.Argument) string {
	if len(o.Name) == 2 && o.Name[0] == '-' && o.Name[1] != '-' {
		return o.Name[1:]
	}
	return ""
}

// argparseSpecs returns the argparse option specs of a command, e.g.
// "v/verbose", "o/output=", "t/tag=+" or "c/color=?".
func argparseSpecs(opts []argtree.Argument) ([]string, error) {
	letters, err := shortLetters(opts)
	if err != nil {
		return nil, err
	}
	specs := make([]string, len(opts))
	for i, o := range opts {
		spec := letters[i]
		if long := o.LongName(); long != letters[i] {
			spec += "/" + long
		}
		switch {
		case o.Flag:
		case o.Array:
			spec += "=+"
		case o.Optional:
			spec += "=?"
		default:
			spec += "="
		}
		specs[i] = spec
	}
	return specs, nil
}
