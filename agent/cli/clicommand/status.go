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

const statusCommand = "status"

const statusCommandHelp = `NAME:
    {{.CommandName}}

DESCRIPTION
    Reports whether the server registered for the configuration of a launch document is running and
    answering its health checks.

SYNOPSIS
    {{.CommandName}}
    {{.SpecFlag}} <file>

OUTPUT
    Status of the server as JSON
`

func init() {
	cliutil.Register(&StatusCommand{})
}

type StatusCommand struct {
	helpText string
}

// Execute validates and executes the status cli command
func (c *StatusCommand) Execute(ctx context.T, subcommands []string, parameters map[string][]string) (error, string) {
	if err := validateInput(statusCommand, subcommands, parameters, true); err != nil {
		return err, ""
	}
	deps := newDependencies(ctx)
	spec, err := loadSpec(ctx, deps, parameters)
	if err != nil {
		return err, ""
	}
	status := hosting.ServerStatus{BaseURL: spec.BaseURL(), ConfigHash: spec.ConfigHash()}
	entry, found, err := deps.Registry.TryLoad(spec.ConfigHash())
	if err != nil {
		return err, ""
	}
	if found {
		status.PID = entry.PID
		status.Running = entry.AttachOnly() || deps.Registry.IsAlive(entry)
		status.Healthy = status.Running && entry.Healthy && deps.Probe.IsReady(spec)
	}
	result, err := jsonutil.MarshalIndent(status)
	return err, result
}

// Help prints help for the status cli command
func (c *StatusCommand) Help() string {
	if len(c.helpText) == 0 {
		c.helpText = renderHelp(statusCommand, statusCommandHelp)
	}
	return c.helpText
}

// Name is the command name used in the cli
func (StatusCommand) Name() string {
	return statusCommand
}
