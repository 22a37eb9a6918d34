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

// Package cliutil contains helper functions for cli and clicommand
package cliutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/serverhost/serverhost/agent/context"
)

const (
	HelpFlag                  = "help"
	CliName                   = "serverhost-cli"
	CLI_PARSE_FAIL_EXITCODE   = 2
	CLI_COMMAND_FAIL_EXITCODE = 255
	CLI_SUCCESS_EXITCODE      = 0
)

const (
	flagPrefix = "--"
)

// CliCommands is the set of support commands
var CliCommands map[string]CliCommand

// CliCommand defines the interface for all commands the cli can execute
type CliCommand interface {
	Execute(ctx context.T, subcommands []string, parameters map[string][]string) (error, string)
	Help() string
	Name() string
}

// init creates the map of commands - all imported commands will add themselves to the map
func init() {
	CliCommands = make(map[string]CliCommand)
}

// Register adds command to CliCommands under its name
func Register(command CliCommand) {
	CliCommands[command.Name()] = command
}

// FormatFlag returns a parameter name formatted as a command line flag
func FormatFlag(flagName string) string {
	return fmt.Sprintf("%v%v", flagPrefix, flagName)
}

// IsFlag returns true if val is a flag
func IsFlag(val string) bool {
	return strings.HasPrefix(val, flagPrefix)
}

// GetFlag returns the flag name if val is a flag, or empty if it is not
func GetFlag(val string) string {
	if strings.HasPrefix(val, flagPrefix) {
		return strings.ToLower(strings.TrimPrefix(val, flagPrefix))
	}
	return ""
}

// IsHelp determines if a subcommand or flag is a request for help
func IsHelp(subcommands []string, parameters map[string][]string) bool {
	for _, val := range subcommands {
		if val == HelpFlag {
			return true
		}
	}
	if _, exists := parameters[HelpFlag]; exists {
		return true
	}
	return false
}

// SingleValue returns the only value of a required parameter
func SingleValue(parameters map[string][]string, name string) (string, error) {
	values, exists := parameters[name]
	if !exists {
		return "", fmt.Errorf("%v is required", FormatFlag(name))
	}
	if len(values) != 1 {
		return "", fmt.Errorf("expected 1 value for parameter %v", FormatFlag(name))
	}
	return values[0], nil
}

// IntValues parses every value of an optional parameter as an integer
func IntValues(parameters map[string][]string, name string) ([]int, error) {
	numbers := make([]int, 0, len(parameters[name]))
	for _, val := range parameters[name] {
		number, err := strconv.Atoi(val)
		if err != nil {
			return nil, fmt.Errorf("invalid value %v for parameter %v", val, FormatFlag(name))
		}
		numbers = append(numbers, number)
	}
	return numbers, nil
}

// UnknownParameters lists the parameters that are not in allowed
func UnknownParameters(parameters map[string][]string, allowed ...string) []string {
	validation := make([]string, 0)
	for key := range parameters {
		known := false
		for _, name := range allowed {
			if key == name {
				known = true
				break
			}
		}
		if !known {
			validation = append(validation, fmt.Sprintf("unknown parameter %v", FormatFlag(key)))
		}
	}
	return validation
}
