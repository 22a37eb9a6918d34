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
	"github.com/serverhost/serverhost/core/hosting"
)

const startCommand = "start"

const startCommandHelp = `NAME:
    {{.CommandName}}

DESCRIPTION
    Starts the server described by a launch document, or reuses the healthy server another run started
    with the same configuration. The server keeps running after the command returns.

SYNOPSIS
    {{.CommandName}}
    {{.SpecFlag}} <file>

PARAMETERS
    {{.SpecFlag}} (string) Path of the YAML launch document.

EXAMPLES
    Command:

      {{.CliName}} {{.CommandName}} {{.SpecFlag}} web.yaml

OUTPUT
    Status of the server as JSON
`

func init() {
	cliutil.Register(&StartCommand{})
}

type StartCommand struct {
	helpText string
}

// Execute validates and executes the start cli command
func (c *StartCommand) Execute(ctx context.T, subcommands []string, parameters map[string][]string) (error, string) {
	if err := validateInput(startCommand, subcommands, parameters, true); err != nil {
		return err, ""
	}
	deps := newDependencies(ctx)
	spec, err := loadSpec(ctx, deps, parameters)
	if err != nil {
		return err, ""
	}
	strategy, err := hosting.NewStrategy(spec, deps)
	if err != nil {
		return err, ""
	}
	status, err := strategy.Start(ctx.Log())
	if err != nil {
		return err, ""
	}
	result, err := jsonutil.MarshalIndent(status)
	return err, result
}

// Help prints help for the start cli command
func (c *StartCommand) Help() string {
	if len(c.helpText) == 0 {
		c.helpText = renderHelp(startCommand, startCommandHelp)
	}
	return c.helpText
}

// Name is the command name used in the cli
func (StartCommand) Name() string {
	return startCommand
}
