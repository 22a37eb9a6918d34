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
)

const hashCommand = "hash"

const hashCommandHelp = `NAME:
    {{.CommandName}}

DESCRIPTION
    Prints the configuration hash identifying the server of a launch document in the registry.

SYNOPSIS
    {{.CommandName}}
    {{.SpecFlag}} <file>
`

func init() {
	cliutil.Register(&HashCommand{})
}

type HashCommand struct {
	helpText string
}

// Execute validates and executes the hash cli command
func (c *HashCommand) Execute(ctx context.T, subcommands []string, parameters map[string][]string) (error, string) {
	if err := validateInput(hashCommand, subcommands, parameters, true); err != nil {
		return err, ""
	}
	spec, err := loadSpec(ctx, newDependencies(ctx), parameters)
	if err != nil {
		return err, ""
	}
	return nil, spec.ConfigHash()
}

// Help prints help for the hash cli command
func (c *HashCommand) Help() string {
	if len(c.helpText) == 0 {
		c.helpText = renderHelp(hashCommand, hashCommandHelp)
	}
	return c.helpText
}

// Name is the command name used in the cli
func (HashCommand) Name() string {
	return hashCommand
}
