// Copyright 2026 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may not
// use this file except in compliance with the License. A copy of the
// License is located at
//
// http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
// either express or implied. See the License for the specific language governing
// permissions and limitations under the License.

// Package command turns a launch specification into the executable, argument string and environment
// overrides used to start the server. Builders are pure: they never touch the file system or the
// process environment.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/shlex"
	"github.com/serverhost/serverhost/agent/launchspec"
)

var (
	// ErrNoBuilder is returned for kinds whose servers are not started from a command line.
	ErrNoBuilder = errors.New("no command builder for runtime kind")

	// ErrNoCommand is returned when the specification describes a server to attach to, not to start.
	ErrNoCommand = errors.New("specification has nothing to start")
)

// Command is a built server command line.
type Command struct {
	Executable string
	// Arguments is the argument string; Argv splits it.
	Arguments string
	// Env holds the variables to set on top of the inherited environment.
	Env map[string]string
	// Unset names inherited variables to remove.
	Unset []string
}

// Argv splits Arguments into tokens with shell quoting rules.
func (c Command) Argv() ([]string, error) {
	if strings.TrimSpace(c.Arguments) == "" {
		return []string{}, nil
	}
	tokens, err := shlex.Split(c.Arguments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments %q, %v", c.Arguments, err)
	}
	return tokens, nil
}

// String renders the command line for logging. Environment values are not included.
func (c Command) String() string {
	if c.Arguments == "" {
		return quote(c.Executable)
	}
	return quote(c.Executable) + " " + c.Arguments
}

// EnvKeys returns the names of the variables the command sets, sorted.
func (c Command) EnvKeys() []string {
	keys := make([]string, 0, len(c.Env))
	for key := range c.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Builder builds the command for one runtime kind.
type Builder interface {
	Build(spec launchspec.Spec) (Command, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(spec launchspec.Spec) (Command, error)

// Build calls f(spec).
func (f BuilderFunc) Build(spec launchspec.Spec) (Command, error) {
	return f(spec)
}

// Table selects the builder for a runtime kind.
type Table map[launchspec.Kind]Builder

// DefaultTable returns a table covering every runtime kind.
func DefaultTable() Table {
	return Table{
		launchspec.StandardWeb:             BuilderFunc(BuildStandardWeb),
		launchspec.Node:                    BuilderFunc(BuildNode),
		launchspec.External:                BuilderFunc(BuildExternal),
		launchspec.InProcessHarness:        BuilderFunc(BuildStandardWeb),
		launchspec.DistributedOrchestrator: BuilderFunc(noBuilder),
	}
}

// Build builds spec with the builder registered for its kind.
func (t Table) Build(spec launchspec.Spec) (Command, error) {
	builder, ok := t[spec.Kind()]
	if !ok || builder == nil {
		return Command{}, fmt.Errorf("%w %v", ErrNoBuilder, spec.Kind())
	}
	return builder.Build(spec)
}

func noBuilder(spec launchspec.Spec) (Command, error) {
	return Command{}, fmt.Errorf("%w %v", ErrNoBuilder, spec.Kind())
}

// JoinArgs joins tokens into an argument string that Argv splits back into the same tokens.
func JoinArgs(tokens []string) string {
	quoted := make([]string, 0, len(tokens))
	for _, token := range tokens {
		quoted = append(quoted, quote(token))
	}
	return strings.Join(quoted, " ")
}

func quote(token string) string {
	if token != "" && !strings.ContainsAny(token, " \t\r\n\"'\\#") {
		return token
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range token {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// overlay returns the specification's environment with vars set on top, replacing keys that differ
// only in case, and with unset removed.
func overlay(spec launchspec.Spec, vars map[string]string, unset []string) map[string]string {
	env := spec.Env()
	for key, value := range vars {
		removeKey(env, key)
		env[key] = value
	}
	for _, key := range unset {
		removeKey(env, key)
	}
	return env
}

func removeKey(env map[string]string, name string) {
	for key := range env {
		if strings.EqualFold(key, name) {
			delete(env, key)
		}
	}
}

func requireEntryPath(spec launchspec.Spec) error {
	if spec.EntryPath() == "" {
		return &launchspec.ValidationError{Field: "entryPath", Reason: fmt.Sprintf("required for %v servers", spec.Kind())}
	}
	return nil
}

func requireBaseURL(spec launchspec.Spec) error {
	if spec.BaseURL() == "" {
		return &launchspec.ValidationError{Field: "baseUrl", Reason: fmt.Sprintf("required for %v servers", spec.Kind())}
	}
	return nil
}
