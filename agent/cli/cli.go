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

// Package cli represents the entry point of the serverhost cli.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/cli/cliutil"
	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/log"
)

var newContext = defaultContext

func defaultContext() context.T {
	logger := log.Logger()
	config, err := appconfig.Config(false)
	if err != nil {
		logger.Warnf("Failed to load configuration, using defaults, %v", err)
		config = appconfig.DefaultConfig()
	}
	return context.Default(logger, config)
}

// RunCommand parses and executes a single command line and returns the process exit code
func RunCommand(args []string, out io.Writer) int {
	if len(args) < 2 {
		displayUsage(out)
		return cliutil.CLI_PARSE_FAIL_EXITCODE
	}
	err, command, subcommands, parameters := parseCommand(args)
	if err != nil {
		displayUsage(out)
		fmt.Fprintln(out, err.Error())
		return cliutil.CLI_PARSE_FAIL_EXITCODE
	}
	if command == cliutil.HelpFlag {
		displayHelp(out)
		return cliutil.CLI_SUCCESS_EXITCODE
	}
	cmd, exists := cliutil.CliCommands[command]
	if !exists {
		displayUsage(out)
		fmt.Fprintf(out, "\nInvalid command %v.  The following commands are supported:\n\n", command)
		displayValidCommands(out)
		return cliutil.CLI_PARSE_FAIL_EXITCODE
	}
	if cliutil.IsHelp(subcommands, parameters) {
		fmt.Fprintln(out, cmd.Help())
		return cliutil.CLI_SUCCESS_EXITCODE
	}

	ctx := newContext()
	defer ctx.Log().Flush()
	cmdErr, result := cmd.Execute(ctx, subcommands, parameters)
	if cmdErr != nil {
		fmt.Fprintln(out, cmdErr.Error())
		return cliutil.CLI_COMMAND_FAIL_EXITCODE
	}
	fmt.Fprintln(out, result)
	return cliutil.CLI_SUCCESS_EXITCODE
}

// parseCommand turns the command line arguments into a command name and a map of flag names and values
// args format should be serverhost-cli <command> [<subcommand> ...] [parameters]
func parseCommand(args []string) (err error, command string, subcommands []string, parameters map[string][]string) {
	argCount := len(args)
	pos := 1

	command = strings.ToLower(args[pos])
	if cliutil.IsFlag(command) {
		if cliutil.GetFlag(command) == cliutil.HelpFlag {
			return nil, cliutil.HelpFlag, nil, nil
		}
		err = errors.New("command is required")
		return
	}
	pos++

	subcommands = make([]string, 0)
	for _, val := range args[pos:] {
		if cliutil.IsFlag(val) {
			break
		}
		subcommands = append(subcommands, strings.ToLower(val))
		pos++
	}

	parameters = make(map[string][]string)
	if pos >= argCount {
		return
	}
	var parameterName string
	for _, val := range args[pos:] {
		if cliutil.IsFlag(val) {
			parameterName = cliutil.GetFlag(val)
			if parameterName == "" {
				err = fmt.Errorf("input contains parameter with no name")
				return
			}
			if _, exists := parameters[parameterName]; exists {
				err = fmt.Errorf("duplicate parameter %v", parameterName)
				return
			}
			parameters[parameterName] = make([]string, 0)
		} else {
			parameters[parameterName] = append(parameters[parameterName], val)
		}
	}
	return
}
