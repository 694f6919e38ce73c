// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"fmt"
	"strings"
)

// Hint tells a shell how to complete the value of an argument. The set of
// hints is closed: None, Unspecified, Choices, Filename and Function.
//
// Code that turns hints into output implements HintVisitor, so a new kind of
// hint fails to compile until every emitter handles it.
type Hint interface {
	Accept(v HintVisitor)
	hint()
}

// HintVisitor has one method per Hint variant.
type HintVisitor interface {
	VisitNone()
	VisitUnspecified()
	VisitChoices(Choices)
	VisitFilename()
	VisitFunction(Function)
}

// None means the argument has no value to complete.
type None struct{}

// Unspecified leaves completion to the shell's default behavior.
type Unspecified struct{}

// Choices completes from a fixed list of values.
type Choices struct {
	Items []Choice
}

// Choice is one completion candidate with an optional description.
type Choice struct {
	Value       string
	Description string
}

// Filename completes file names.
type Filename struct{}

// Function delegates completion to a shell function the host provides.
type Function struct {
	Name string
}

func (None) hint()        {}
func (Unspecified) hint() {}
func (Choices) hint()     {}
func (Filename) hint()    {}
func (Function) hint()    {}

func (None) Accept(v HintVisitor)        { v.VisitNone() }
func (Unspecified) Accept(v HintVisitor) { v.VisitUnspecified() }
func (h Choices) Accept(v HintVisitor)   { v.VisitChoices(h) }
func (Filename) Accept(v HintVisitor)    { v.VisitFilename() }
func (h Function) Accept(v HintVisitor)  { v.VisitFunction(h) }

// Values returns the candidate values without descriptions.
func (h Choices) Values() []string {
	out := make([]string, len(h.Items))
	for i, c := range h.Items {
		out[i] = c.Value
	}
	return out
}

// ChoicesOf returns a Choices hint for values without descriptions.
func ChoicesOf(values ...string) Choices {
	items := make([]Choice, len(values))
	for i, v := range values {
		items[i] = Choice{Value: v}
	}
	return Choices{Items: items}
}

// ParseHint parses the textual form of a hint used in struct tags and tree
// documents:
//
//	none
//	unspecified            (also the empty string)
//	file                   (or filename)
//	func:NAME              (or function:NAME)
//	values:a,b=desc,c      (descriptions follow '=')
func ParseHint(s string) (Hint, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimSpace(s), ":")
	switch kind {
	case "", "unspecified":
		return Unspecified{}, nil
	case "none":
		return None{}, nil
	case "file", "filename":
		return Filename{}, nil
	case "func", "function":
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("hint %q: missing function name", s)
		}
		return Function{Name: arg}, nil
	case "values":
		if !hasArg || arg == "" {
			return nil, fmt.Errorf("hint %q: missing values", s)
		}
		var c Choices
		for _, part := range strings.Split(arg, ",") {
			value, desc, _ := strings.Cut(part, "=")
			if value == "" {
				continue
			}
			c.Items = append(c.Items, Choice{Value: value, Description: desc})
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown completion hint %q", s)
}

// HintString returns the textual form of h accepted by ParseHint.
func HintString(h Hint) string {
	var p hintPrinter
	h.Accept(&p)
	return p.s
}

type hintPrinter struct {
	s string
}

func (p *hintPrinter) VisitNone()        { p.s = "none" }
func (p *hintPrinter) VisitUnspecified() { p.s = "unspecified" }
func (p *hintPrinter) VisitFilename()    { p.s = "file" }
func (p *hintPrinter) VisitFunction(f Function) {
	p.s = "func:" + f.Name
}
func (p *hintPrinter) VisitChoices(c Choices) {
	parts := make([]string, len(c.Items))
	for i, item := range c.Items {
		parts[i] = item.Value
		if item.Description != "" {
			parts[i] += "=" + item.Description
		}
	}
	p.s = "values:" + strings.Join(parts, ",")
}
