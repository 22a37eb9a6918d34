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
)

const reapCommand = "reap"

const reapCommandHelp = `NAME:
    {{.CommandName}}

DESCRIPTION
    Kills processes listening on registered ports that the registry does not account for.

SYNOPSIS
    {{.CommandName}}
    [{{.PortFlag}} <port> ...]

PARAMETERS
    {{.PortFlag}} (integer list) Additional ports to clear.

OUTPUT
    Killed process ids as JSON
`

func init() {
	cliutil.Register(&ReapCommand{})
}

type ReapCommand struct {
	helpText string
}

// Execute validates and executes the reap cli command
func (c *ReapCommand) Execute(ctx context.T, subcommands []string, parameters map[string][]string) (error, string) {
	if err := validateInput(reapCommand, subcommands, parameters, false, portFlag); err != nil {
		return err, ""
	}
	ports, err := cliutil.IntValues(parameters, portFlag)
	if err != nil {
		return err, ""
	}
	killed, err := newDependencies(ctx).Registry.KillOrphans(ports...)
	if err != nil {
		return err, ""
	}
	if killed == nil {
		killed = []int{}
	}
	result, err := jsonutil.Marshal(killed)
	return err, result
}

// Help prints help for the reap cli command
func (c *ReapCommand) Help() string {
	if len(c.helpText) == 0 {
		c.helpText = renderHelp(reapCommand, reapCommandHelp)
	}
	return c.helpText
}

// Name is the command name used in the cli
func (ReapCommand) Name() string {
	return reapCommand
}
