// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Invocation describes a single external command.
type Invocation struct {
	// Program is the executable name or path.
	Program string
	// Args are passed to Program in order.
	Args []string
	// Env holds variables set on top of the inherited process environment.
	Env map[string]string
}

// Command creates an Invocation for program with args.
func Command(program string, args ...string) Invocation {
	return Invocation{Program: program, Args: args}
}

// WithEnv returns a copy of the invocation with key=value added to its overrides.
func (inv Invocation) WithEnv(key, value string) Invocation {
	env := make(map[string]string, len(inv.Env)+1)
	maps.Copy(env, inv.Env)
	env[key] = value
	inv.Env = env
	return inv
}

// String renders the invocation as a shell-quoted command line. Environment
// overrides are prefixed as KEY=value in sorted key order.
func (inv Invocation) String() string {
	words := make([]string, 0, len(inv.Env)+1+len(inv.Args))
	for _, key := range slices.Sorted(maps.Keys(inv.Env)) {
		words = append(words, key+"="+quote(inv.Env[key]))
	}
	words = append(words, quote(inv.Program))
	for _, arg := range inv.Args {
		words = append(words, quote(arg))
	}
	return strings.Join(words, " ")
}

// environ returns the KEY=value pairs to append to the inherited environment.
func (inv Invocation) environ() []string {
	if len(inv.Env) == 0 {
		return nil
	}
	env := make([]string, 0, len(inv.Env))
	for _, key := range slices.Sorted(maps.Keys(inv.Env)) {
		env = append(env, key+"="+inv.Env[key])
	}
	return env
}

func quote(word string) string {
	quoted, err := syntax.Quote(word, syntax.LangBash)
	if err != nil {
		// Words bash cannot represent (e.g. NUL bytes) fall back to Go quoting.
		return strconv.Quote(word)
	}
	return quoted
}
