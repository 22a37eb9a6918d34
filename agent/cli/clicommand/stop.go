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
	"fmt"

	"github.com/serverhost/serverhost/agent/cli/cliutil"
	"github.com/serverhost/serverhost/agent/context"
)

const stopCommand = "stop"

const stopCommandHelp = `NAME:
    {{.CommandName}}

DESCRIPTION
    Stops the server registered for the configuration of a launch document, whoever started it.

SYNOPSIS
    {{.CommandName}}
    {{.SpecFlag}} <file>

PARAMETERS
    {{.SpecFlag}} (string) Path of the YAML launch document.
`

func init() {
	cliutil.Register(&StopCommand{})
}

type StopCommand struct {
	helpText string
}

// Execute validates and executes the stop cli command
func (c *StopCommand) Execute(ctx context.T, subcommands []string, parameters map[string][]string) (error, string) {
	if err := validateInput(stopCommand, subcommands, parameters, true); err != nil {
		return err, ""
	}
	deps := newDependencies(ctx)
	spec, err := loadSpec(ctx, deps, parameters)
	if err != nil {
		return err, ""
	}
	hash := spec.ConfigHash()
	entry, found, err := deps.Registry.TryLoad(hash)
	if err != nil {
		return err, ""
	}
	if !found {
		return fmt.Errorf("no server is registered for configuration %v", hash), ""
	}
	alive := !entry.AttachOnly() && deps.Registry.IsAlive(entry)
	if alive && !deps.Registry.TryKill(entry.PID) {
		return fmt.Errorf("failed to kill server pid %v", entry.PID), ""
	}
	if err = deps.Registry.Delete(hash); err != nil {
		return err, ""
	}
	if !alive {
		return nil, fmt.Sprintf("Removed registration of %v", entry.BaseURL)
	}
	return nil, fmt.Sprintf("Stopped server pid %v on %v", entry.PID, entry.BaseURL)
}

// Help prints help for the stop cli command
func (c *StopCommand) Help() string {
	if len(c.helpText) == 0 {
		c.helpText = renderHelp(stopCommand, stopCommandHelp)
	}
	return c.helpText
}

// Name is the command name used in the cli
func (StopCommand) Name() string {
	return stopCommand
}
