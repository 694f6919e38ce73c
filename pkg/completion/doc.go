// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package completion writes shell completion scripts for bash, zsh and fish
// from an argtree.Tree.
//
// Each dialect has its own emitter. They share the tree type, the sink they
// write to and the rule that usage text loses its "[default: ...]"
// annotation before it is escaped, and nothing else.
//
// Generate writes only the completion functions. A sourceable script also
// needs a small dialect-specific prologue and epilogue, which Prologue and
// Epilogue return and WriteScript puts around the body:
//
//	s := bytesink.NewMemory(bytesink.Options{})
//	completion.WriteScript(tree, completion.Zsh, s)
//	os.Stdout.Write(s.Bytes().Bytes())
//
// Generate panics with a *ContractViolation when the tree cannot be turned
// into a script: the root has no name, two options of one command share a
// short name, a subcommand refers back to an ancestor, or fish runs out of
// letters for options without a short name. These are programming errors in
// the host; trees read from files should be checked with Tree.Validate
// first.
package completion
