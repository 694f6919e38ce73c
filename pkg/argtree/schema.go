// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// FromSchema builds a Tree from a flags struct and a positional-args struct,
// either of which may be nil. The struct tags are the ones the yargs parser
// reads (flag, short, help, default, pos) plus complete, which takes the
// ParseHint syntax.
func FromSchema(name, overview string, flags, args any) (*Tree, error) {
	t := New(name, overview)
	opts, err := OptionsFromStruct(flags)
	if err != nil {
		return nil, err
	}
	pos, err := PositionalsFromStruct(args)
	if err != nil {
		return nil, err
	}
	t.Options = opts
	t.Positionals = pos
	return t, nil
}

func structType(v any) (reflect.Type, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false, fmt.Errorf("schema must be a struct, got %s", t)
	}
	return t, true, nil
}

// OptionsFromStruct returns one option per exported field of flags.
//
// The option name is the flag tag, or the lower-cased field name. Boolean
// fields become flags, slice fields become array options, and a default tag
// is appended to the usage text as "[default: ...]".
func OptionsFromStruct(flags any) ([]Argument, error) {
	st, ok, err := structType(flags)
	if err != nil || !ok {
		return nil, err
	}
	var out []Argument
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() || field.Tag.Get("pos") != "" {
			continue
		}

		flagName := field.Tag.Get("flag")
		if flagName == "-" {
			continue
		}
		if flagName == "" {
			flagName = strings.ToLower(field.Name)
		}
		a := Argument{
			Kind:  Option,
			Name:  "--" + flagName,
			Usage: usageWithDefault(field.Tag.Get("help"), field.Tag.Get("default")),
		}
		if short := field.Tag.Get("short"); short != "" {
			a.Short = "-" + short
		}

		ft := field.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		a.Flag = ft.Kind() == reflect.Bool
		a.Array = isList(ft)
		a.Optional, _ = strconv.ParseBool(field.Tag.Get("optional"))

		if a.Hint, err = fieldHint(field, a.Flag); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// PositionalsFromStruct returns the fields of args that carry a pos tag,
// ordered by position. The tag forms are "N" (required), "N?" (optional),
// "N*" (zero or more) and "N+" (one or more).
func PositionalsFromStruct(args any) ([]Argument, error) {
	st, ok, err := structType(args)
	if err != nil || !ok {
		return nil, err
	}
	type positional struct {
		pos int
		arg Argument
	}
	var found []positional
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		posTag := field.Tag.Get("pos")
		if posTag == "" {
			continue
		}

		a := Argument{
			Kind:  Positional,
			Name:  strings.ToLower(field.Name),
			Usage: usageWithDefault(field.Tag.Get("help"), field.Tag.Get("default")),
			Array: isList(field.Type),
		}
		if name := field.Tag.Get("name"); name != "" {
			a.Name = name
		}

		posStr := posTag
		switch {
		case strings.HasSuffix(posTag, "?"):
			a.Optional = true
			posStr = strings.TrimSuffix(posTag, "?")
		case strings.HasSuffix(posTag, "*"):
			a.Optional = true
			a.Array = true
			posStr = strings.TrimSuffix(posTag, "*")
		case strings.HasSuffix(posTag, "+"):
			a.Array = true
			posStr = strings.TrimSuffix(posTag, "+")
		}
		pos, err := strconv.Atoi(posStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: invalid pos tag %q", field.Name, posTag)
		}

		if a.Hint, err = fieldHint(field, false); err != nil {
			return nil, err
		}
		found = append(found, positional{pos: pos, arg: a})
	}

	slices.SortStableFunc(found, func(a, b positional) int {
		return a.pos - b.pos
	})
	out := make([]Argument, len(found))
	for i, p := range found {
		out[i] = p.arg
	}
	return out, nil
}

func fieldHint(field reflect.StructField, flag bool) (Hint, error) {
	tag, ok := field.Tag.Lookup("complete")
	if !ok {
		if flag {
			return None{}, nil
		}
		return Unspecified{}, nil
	}
	h, err := ParseHint(tag)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field.Name, err)
	}
	return h, nil
}

func usageWithDefault(help, def string) string {
	if def == "" {
		return help
	}
	if help == "" {
		return "[default: " + def + "]"
	}
	return help + " [default: " + def + "]"
}

func isList(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8
}
