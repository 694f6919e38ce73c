// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"tailscale.com/util/set"
)

// ValidationError describes one problem with a Tree.
type ValidationError struct {
	// Path is the command path of the offending node, starting with the
	// root name.
	Path []string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", strings.Join(e.Path, " "), e.Msg)
}

// Validate checks the structural rules a Tree must follow before scripts
// are generated from it:
//   - the root has a name;
//   - option names start with '-' and are unique within their command;
//   - short aliases are a dash and one character and are unique within
//     their command;
//   - positional names are set and do not start with '-';
//   - function hints name a function;
//   - subcommand names are set and contain no whitespace;
//   - no subcommand refers back to one of its ancestors.
//
// All problems found are returned, joined with errors.Join.
func (t *Tree) Validate() error {
	v := validator{onPath: make(set.Set[*Tree])}
	root := t.Name
	if root == "" {
		v.fail([]string{"<root>"}, "command name is empty")
		root = "<root>"
	}
	v.check([]string{root}, t)
	return errors.Join(v.errs...)
}

type validator struct {
	onPath set.Set[*Tree]
	errs   []error
}

func (v *validator) fail(path []string, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Msg: fmt.Sprintf(format, args...)})
}

func (v *validator) check(path []string, t *Tree) {
	if v.onPath.Contains(t) {
		v.fail(path, "subcommand refers back to an ancestor")
		return
	}
	v.onPath.Add(t)
	defer v.onPath.Delete(t)

	for _, p := range t.Positionals {
		switch {
		case p.Name == "":
			v.fail(path, "positional argument without a name")
		case strings.HasPrefix(p.Name, "-"):
			v.fail(path, "positional argument %q starts with '-'", p.Name)
		}
		v.checkHint(path, p)
	}

	names := make(set.Set[string])
	shorts := make(set.Set[string])
	for _, o := range t.Options {
		if !strings.HasPrefix(o.Name, "-") || strings.Trim(o.Name, "-") == "" {
			v.fail(path, "option name %q must start with '-'", o.Name)
		}
		if names.Contains(o.Name) {
			v.fail(path, "duplicate option %s", o.Name)
		}
		names.Add(o.Name)
		if o.Short != "" {
			if !validShort(o.Short) {
				v.fail(path, "short name %q of %s must be '-' and one character", o.Short, o.Name)
			}
			if shorts.Contains(o.Short) {
				v.fail(path, "duplicate short name %s", o.Short)
			}
			shorts.Add(o.Short)
		}
		v.checkHint(path, o)
	}
	for s := range shorts {
		if names.Contains(s) {
			v.fail(path, "short name %s is also an option name", s)
		}
	}

	for name, sub := range t.Subcommands.All() {
		if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
			v.fail(path, "invalid subcommand name %q", name)
		}
		if sub == nil {
			v.fail(path, "subcommand %q has no tree", name)
			continue
		}
		v.check(append(path[:len(path):len(path)], name), sub)
	}
}

func (v *validator) checkHint(path []string, a Argument) {
	if f, ok := a.Hint.(Function); ok && !validFunctionName(f.Name) {
		v.fail(path, "%s: invalid completion function name %q", a.Name, f.Name)
	}
}

func validShort(s string) bool {
	r := []rune(s)
	return len(r) == 2 && r[0] == '-' && r[1] != '-' && !unicode.IsSpace(r[1])
}

func validFunctionName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !(r == '_' || r == '-' || r == ':' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
