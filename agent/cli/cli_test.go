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
	"bytes"
	"errors"
	"testing"

	"github.com/serverhost/serverhost/agent/cli/cliutil"
	CliCommandMock "github.com/serverhost/serverhost/agent/cli/cliutil/mocks"
	"github.com/serverhost/serverhost/agent/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func withMockContext(t *testing.T) {
	oldFunc := newContext
	newContext = func() context.T { return context.NewMockDefault() }
	t.Cleanup(func() { newContext = oldFunc })
}

func TestCliUsage(t *testing.T) {
	var buffer bytes.Buffer
	exitCode := RunCommand([]string{"serverhost-cli"}, &buffer)
	assert.Contains(t, buffer.String(), "usage")
	assert.Equal(t, cliutil.CLI_PARSE_FAIL_EXITCODE, exitCode, "Command without enough arguments should return exit code 2")
}

func TestCliInvalidCommand(t *testing.T) {
	var buffer bytes.Buffer
	exitCode := RunCommand([]string{"serverhost-cli", "testCommand"}, &buffer)
	assert.Equal(t, cliutil.CLI_PARSE_FAIL_EXITCODE, exitCode, "Invalid command should return exit code 2")
	assert.Contains(t, buffer.String(), "Invalid command testcommand")
}

func TestCliHelp(t *testing.T) {
	for _, arg := range []string{"help", "--help"} {
		var buffer bytes.Buffer
		exitCode := RunCommand([]string{"serverhost-cli", arg}, &buffer)
		assert.Equal(t, cliutil.CLI_SUCCESS_EXITCODE, exitCode, "help command should return exit code 0")
		assert.Contains(t, buffer.String(), "Available commands")
	}
}

func TestCliDuplicateParameter(t *testing.T) {
	var buffer bytes.Buffer
	exitCode := RunCommand([]string{"serverhost-cli", "start", "--spec", "a.yaml", "--spec", "b.yaml"}, &buffer)
	assert.Equal(t, cliutil.CLI_PARSE_FAIL_EXITCODE, exitCode)
	assert.Contains(t, buffer.String(), "duplicate parameter spec")
}

func TestParseCommand(t *testing.T) {
	err, command, subcommands, parameters := parseCommand(
		[]string{"serverhost-cli", "Reap", "now", "--Port", "5000", "5001", "--verbose"})
	assert.NoError(t, err)
	assert.Equal(t, "reap", command)
	assert.Equal(t, []string{"now"}, subcommands)
	assert.Equal(t, map[string][]string{"port": {"5000", "5001"}, "verbose": {}}, parameters)
}

func TestCliCmdHelp(t *testing.T) {
	cliCmdMock := &CliCommandMock.CliCommand{}
	cliCmdMock.On("Name").Return("cli-help-mock").Once()
	cliCmdMock.On("Help").Return("help text").Once()
	cliutil.Register(cliCmdMock)

	var buffer bytes.Buffer
	exitCode := RunCommand([]string{"serverhost-cli", "cli-help-mock", "--help"}, &buffer)
	assert.Equal(t, cliutil.CLI_SUCCESS_EXITCODE, exitCode)
	assert.Contains(t, buffer.String(), "help text")
	cliCmdMock.AssertExpectations(t)
}

func TestCliCmdExecError(t *testing.T) {
	withMockContext(t)
	cliCmdMock := &CliCommandMock.CliCommand{}
	cliCmdMock.On("Name").Return("cli-error-mock").Once()
	cliCmdMock.On("Execute", mock.Anything, mock.AnythingOfType("[]string"), mock.AnythingOfType("map[string][]string")).
		Return(errors.New("no server"), "").Once()
	cliutil.Register(cliCmdMock)

	var buffer bytes.Buffer
	exitCode := RunCommand([]string{"serverhost-cli", "cli-error-mock", "--spec", "server.yaml"}, &buffer)
	assert.Equal(t, cliutil.CLI_COMMAND_FAIL_EXITCODE, exitCode, "command execution error return exit code 255")
	assert.Contains(t, buffer.String(), "no server")
	cliCmdMock.AssertExpectations(t)
}

func TestCliCmdExecSuccess(t *testing.T) {
	withMockContext(t)
	cliCmdMock := &CliCommandMock.CliCommand{}
	cliCmdMock.On("Name").Return("cli-command-mock").Once()
	cliCmdMock.On("Execute", mock.Anything, mock.AnythingOfType("[]string"), mock.AnythingOfType("map[string][]string")).
		Return(nil, "success").Once()
	cliutil.Register(cliCmdMock)

	var buffer bytes.Buffer
	exitCode := RunCommand([]string{"serverhost-cli", "cli-command-mock", "--spec", "server.yaml"}, &buffer)
	assert.Equal(t, cliutil.CLI_SUCCESS_EXITCODE, exitCode, "command execution success return exit code 0")
	assert.Equal(t, "success\n", buffer.String())
	cliCmdMock.AssertExpectations(t)
}
