// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/yeetrun/argcomp/pkg/bytesink"
)

var prefsFile = filepath.Join(os.Getenv("HOME"), ".argcomp", "prefs.json")

var loadedPrefs prefs

type prefs struct {
	changed    bool   `json:"-"`
	Shell      string `json:"shell,omitempty"`
	BufferSize int    `json:"bufferSize,omitempty"`
	Color      *bool  `json:"color,omitempty"`
}

func (p *prefs) save() error {
	if err := os.MkdirAll(filepath.Dir(prefsFile), 0o755); err != nil {
		return err
	}
	j, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	// A failed write never leaves a partial prefs file.
	tmp := prefsFile + ".tmp"
	if err := os.WriteFile(tmp, j, 0o600); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, prefsFile)
}

func (p *prefs) load() error {
	j, err := os.ReadFile(prefsFile)
	if err != nil {
		return err
	}
	return json.Unmarshal(j, p)
}

// applyEnv overrides the stored preferences with ARGCOMP_SHELL,
// ARGCOMP_BUFFER_SIZE and NO_COLOR.
func (p *prefs) applyEnv() {
	if shell := os.Getenv("ARGCOMP_SHELL"); shell != "" {
		p.Shell = shell
	}
	if size := os.Getenv("ARGCOMP_BUFFER_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil && n > 0 {
			p.BufferSize = n
		}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		off := false
		p.Color = &off
	}
}

// applyFlags overrides the preferences with global flags and records
// whether anything changed, so that "prefs --save" knows what to write.
func (p *prefs) applyFlags(f globalFlagsParsed) {
	if f.Shell != "" && f.Shell != p.Shell {
		p.Shell = f.Shell
		p.changed = true
	}
	if f.BufferSize != 0 && f.BufferSize != p.BufferSize {
		p.BufferSize = f.BufferSize
		p.changed = true
	}
	if f.NoColor && p.colorEnabled() {
		off := false
		p.Color = &off
		p.changed = true
	}
}

func (p *prefs) colorEnabled() bool {
	return p.Color == nil || *p.Color
}

func (p *prefs) bufferSize() int {
	if p.BufferSize > 0 {
		return p.BufferSize
	}
	return bytesink.DefaultBufferSize
}

// defaultShell is the preferred shell, falling back to the login shell and
// then to bash.
func (p *prefs) defaultShell() string {
	if p.Shell != "" {
		return p.Shell
	}
	if sh := filepath.Base(os.Getenv("SHELL")); sh == "zsh" || sh == "fish" {
		return sh
	}
	return "bash"
}
