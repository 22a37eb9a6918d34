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

package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/serverhost/serverhost/agent/cli/cliutil"
)

// displayUsage prints cli usage info to the console
func displayUsage(out io.Writer) {
	fmt.Fprintf(out, "usage: %v <command> [subcommand1 subcommand2...] [parameters]\n", cliutil.CliName)
	fmt.Fprint(out, "To see help text, you can run:\n\n")
	fmt.Fprintf(out, "  %v %v\n", cliutil.CliName, cliutil.HelpFlag)
	fmt.Fprintf(out, "  %v <command> %v\n", cliutil.CliName, cliutil.HelpFlag)
}

// displayValidCommands prints a list of valid cli commands to the console
func displayValidCommands(out io.Writer) {
	commands := make([]string, 0, len(cliutil.CliCommands))
	for command := range cliutil.CliCommands {
		commands = append(commands, command)
	}
	sort.Strings(commands)
	for _, command := range commands {
		fmt.Fprintf(out, "%v\n", command)
	}
}

// displayHelp shows help for the serverhost cli
func displayHelp(out io.Writer) {
	fmt.Fprintf(out, "%v\n", cliutil.CliName)
	fmt.Fprintf(out, "Start, reuse, stop and inspect test servers shared by the test runs on this machine.\n\n")
	fmt.Fprintf(out, "Available commands:\n")
	displayValidCommands(out)
}
