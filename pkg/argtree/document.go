// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argtree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
	"tailscale.com/types/logger"
	"tailscale.com/util/set"
)

// SchemaVersion is the document schema version written by Encode.
const SchemaVersion = "1.0"

// schemaConstraint is the range of document versions Decode accepts.
const schemaConstraint = "^1"

// Format is a tree document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("cannot tell the format of %q; use a .yaml, .yml or .toml file", path)
}

// document is the on-disk form of a Tree. Subcommands are a list so that
// their order survives decoding.
type document struct {
	Schema string `yaml:"schema" toml:"schema"`
	commandDoc `yaml:",inline"`
}

type commandDoc struct {
	Name        string        `yaml:"name" toml:"name"`
	Overview    string        `yaml:"overview,omitempty" toml:"overview,omitempty"`
	Positionals []argumentDoc `yaml:"positionals,omitempty" toml:"positionals,omitempty"`
	Options     []argumentDoc `yaml:"options,omitempty" toml:"options,omitempty"`
	Subcommands []commandDoc  `yaml:"subcommands,omitempty" toml:"subcommands,omitempty"`
}

type argumentDoc struct {
	Name     string      `yaml:"name" toml:"name"`
	Short    string      `yaml:"short,omitempty" toml:"short,omitempty"`
	Usage    string      `yaml:"usage,omitempty" toml:"usage,omitempty"`
	Flag     bool        `yaml:"flag,omitempty" toml:"flag,omitempty"`
	Array    bool        `yaml:"array,omitempty" toml:"array,omitempty"`
	Optional bool        `yaml:"optional,omitempty" toml:"optional,omitempty"`
	Complete string      `yaml:"complete,omitempty" toml:"complete,omitempty"`
	Values   []choiceDoc `yaml:"values,omitempty" toml:"values,omitempty"`
}

type choiceDoc struct {
	Value       string `yaml:"value" toml:"value"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

// Loader reads tree documents.
type Loader struct {
	// Logf, if non-nil, receives progress messages.
	Logf logger.Logf
}

func (l Loader) logf(format string, args ...any) {
	if l.Logf != nil {
		l.Logf(format, args...)
	}
}

// Load reads the tree document at path with a zero Loader.
func Load(path string) (*Tree, error) {
	return Loader{}.Load(path)
}

// Load reads and validates the tree document at path. The format follows
// the file extension.
func (l Loader) Load(path string) (*Tree, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tree document: %w", err)
	}
	defer f.Close()
	t, err := l.Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logf("loaded %s: command %q with %d nodes", path, t.Name, t.Count())
	return t, nil
}

// Decode reads a tree document from r with a zero Loader.
func Decode(r io.Reader, format Format) (*Tree, error) {
	return Loader{}.Decode(r, format)
}

// Decode reads a tree document from r and validates the result.
func (l Loader) Decode(r io.Reader, format Format) (*Tree, error) {
	var doc document
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("empty tree document")
			}
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown keys in toml document: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	if err := checkSchema(doc.Schema); err != nil {
		return nil, err
	}
	l.logf("decoded %s document, schema %s", format, doc.Schema)
	t, err := doc.commandDoc.tree()
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func checkSchema(v string) error {
	if v == "" {
		return errors.New("tree document has no schema version")
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("invalid schema version %q: %w", v, err)
	}
	c, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return err
	}
	if !c.Check(ver) {
		return fmt.Errorf("unsupported schema version %s (want %s)", ver, schemaConstraint)
	}
	return nil
}

func (d commandDoc) tree() (*Tree, error) {
	t := New(d.Name, d.Overview)
	for _, p := range d.Positionals {
		a, err := p.argument(Positional)
		if err != nil {
			return nil, err
		}
		t.AddPositional(a)
	}
	for _, o := range d.Options {
		a, err := o.argument(Option)
		if err != nil {
			return nil, err
		}
		t.AddOption(a)
	}
	names := make(set.Set[string])
	for _, s := range d.Subcommands {
		if s.Name == "" {
			return nil, fmt.Errorf("command %q: subcommand without a name", d.Name)
		}
		if names.Contains(s.Name) {
			return nil, fmt.Errorf("command %q: duplicate subcommand %q", d.Name, s.Name)
		}
		names.Add(s.Name)
		sub, err := s.tree()
		if err != nil {
			return nil, err
		}
		t.AddSubcommand(s.Name, sub)
	}
	return t, nil
}

func (d argumentDoc) argument(kind Kind) (Argument, error) {
	a := Argument{
		Kind:     kind,
		Name:     d.Name,
		Short:    d.Short,
		Usage:    d.Usage,
		Flag:     kind == Option && d.Flag,
		Array:    d.Array,
		Optional: d.Optional,
	}
	switch {
	case len(d.Values) > 0:
		if d.Complete != "" && d.Complete != "values" {
			return Argument{}, fmt.Errorf("%s: values given with complete %q", d.Name, d.Complete)
		}
		var c Choices
		for _, v := range d.Values {
			c.Items = append(c.Items, Choice{Value: v.Value, Description: v.Description})
		}
		a.Hint = c
	case d.Complete == "" && a.Flag:
		a.Hint = None{}
	default:
		h, err := ParseHint(d.Complete)
		if err != nil {
			return Argument{}, fmt.Errorf("%s: %w", d.Name, err)
		}
		a.Hint = h
	}
	return a, nil
}

// Encode writes t as a tree document.
func Encode(w io.Writer, t *Tree, format Format) error {
	doc := document{Schema: SchemaVersion, commandDoc: commandDocOf(t)}
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return fmt.Errorf("failed to encode toml: %w", err)
		}
		_, err := buf.WriteTo(w)
		return err
	}
	return fmt.Errorf("unsupported document format %q", format)
}

func commandDocOf(t *Tree) commandDoc {
	d := commandDoc{Name: t.Name, Overview: t.Overview}
	for _, p := range t.Positionals {
		d.Positionals = append(d.Positionals, argumentDocOf(p))
	}
	for _, o := range t.Options {
		d.Options = append(d.Options, argumentDocOf(o))
	}
	for name, sub := range t.Subcommands.All() {
		sd := commandDocOf(sub)
		sd.Name = name
		d.Subcommands = append(d.Subcommands, sd)
	}
	return d
}

func argumentDocOf(a Argument) argumentDoc {
	d := argumentDoc{
		Name:     a.Name,
		Short:    a.Short,
		Usage:    a.Usage,
		Flag:     a.Flag,
		Array:    a.Array,
		Optional: a.Optional,
	}
	switch h := a.CompletionHint().(type) {
	case Choices:
		for _, c := range h.Items {
			d.Values = append(d.Values, choiceDoc{Value: c.Value, Description: c.Description})
		}
	case Unspecified:
	case None:
		if !a.Flag {
			d.Complete = "none"
		}
	default:
		d.Complete = HintString(h)
	}
	return d
}
