// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package completion

import (
	"regexp"
	"strings"
)

var defaultAnnotation = regexp.MustCompile(`\[default: .+?\]`)

// stripDefault removes "[default: ...]" annotations from usage text.
func stripDefault(s string) string {
	return strings.TrimSpace(defaultAnnotation.ReplaceAllString(s, ""))
}

var (
	// Inside "..." in bash and zsh.
	doubleQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

	// Descriptions inside [...] of an _arguments or _values spec.
	zshBracketed = strings.NewReplacer(`[`, `\[`, `]`, `\]`, `(`, `\(`, `)`, `\)`)

	// Messages and names in colon separated zsh specs.
	zshColon = strings.NewReplacer(`:`, `\:`)

	// Inside '...' in bash and zsh.
	singleQuoted = strings.NewReplacer(`'`, `'\''`)

	// Inside '...' in fish.
	fishSingleQuoted = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

	// Candidates in a fish -a argument, which fish expands again when it
	// completes.
	fishToken = strings.NewReplacer(
		`\`, `\\`,
		" ", `\ `, "\t", `\t`, "\n", `\n`,
		`(`, `\(`, `)`, `\)`, `[`, `\[`, `]`, `\]`, `{`, `\{`, `}`, `\}`,
		`$`, `\$`, `*`, `\*`, `?`, `\?`, `~`, `\~`, `#`, `\#`,
		`&`, `\&`, `|`, `\|`, `;`, `\;`, `<`, `\<`, `>`, `\>`,
		`"`, `\"`, `'`, `\'`,
	)
)

// bashPattern matches words that can appear unquoted in a case pattern.
var bashPattern = regexp.MustCompile(`^[A-Za-z0-9_.:=+@%/,-]+$`)

func bashWord(s string) string {
	if bashPattern.MatchString(s) {
		return s
	}
	return "'" + singleQuoted.Replace(s) + "'"
}

func fishQuote(s string) string {
	return "'" + fishSingleQuoted.Replace(s) + "'"
}
