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

package clicommand

import (
	"github.com/serverhost/serverhost/agent/cli/cliutil"
	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/jsonutil"
	"github.com/serverhost/serverhost/core/registry"
)

const listCommand = "list"

const listCommandHelp = `NAME:
    {{.CommandName}}

DESCRIPTION
    Lists every server in the registry of this machine.

SYNOPSIS
    {{.CommandName}}

OUTPUT
    Registry entries as JSON
`

func init() {
	cliutil.Register(&ListCommand{})
}

type ListCommand struct {
	helpText string
}

// Execute validates and executes the list cli command
func (c *ListCommand) Execute(ctx context.T, subcommands []string, parameters map[string][]string) (error, string) {
	if err := validateInput(listCommand, subcommands, parameters, false); err != nil {
		return err, ""
	}
	entries, err := newDependencies(ctx).Registry.Entries()
	if err != nil {
		return err, ""
	}
	if entries == nil {
		entries = []registry.Entry{}
	}
	result, err := jsonutil.MarshalIndent(entries)
	return err, result
}

// Help prints help for the list cli command
func (c *ListCommand) Help() string {
	if len(c.helpText) == 0 {
		c.helpText = renderHelp(listCommand, listCommandHelp)
	}
	return c.helpText
}

// Name is the command name used in the cli
func (ListCommand) Name() string {
	return listCommand
}
