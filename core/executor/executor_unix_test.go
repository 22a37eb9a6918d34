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

//go:build !windows
// +build !windows

package executor

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/serverhost/serverhost/agent/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logger = log.NewMockLog()

func TestIsProcessPsExists(t *testing.T) {
	cmdString := "sleep"
	cmd := exec.Command(cmdString, "5")
	err := cmd.Start()
	//do not call wait in case the process are recycled
	assert.NoError(t, err)
	defer cmd.Process.Kill()
	pid := cmd.Process.Pid
	ppid := os.Getpid()
	logger.Infof("process pid: %v", pid)

	processes, err := getProcess()
	assert.NoError(t, err)
	found := false
	for _, process := range processes {
		if process.Pid == pid && process.PPid == ppid && process.Executable == cmdString {
			found = true
		}
	}
	assert.True(t, found)
}

func TestIsProcessProcExists(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("/proc is only read on linux")
	}
	oldListProcessPs := listProcessPs
	listProcessPs = func() ([]byte, error) {
		return nil, fmt.Errorf("SomeRandomError")
	}
	defer func() { listProcessPs = oldListProcessPs }()
	cmdString := "sleep"
	cmd := exec.Command(cmdString, "5")
	err := cmd.Start()
	assert.NoError(t, err)
	defer cmd.Process.Kill()
	pid := cmd.Process.Pid
	ppid := os.Getpid()

	processes, err := getProcess()
	assert.NoError(t, err)
	found := false
	for _, process := range processes {
		if process.Pid == pid && process.PPid == ppid && process.Executable == cmdString {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParsePsOutput(t *testing.T) {
	output := []byte("  PID  PPID S COMMAND\n    1     0 Ss /sbin/init splash\n  812     1 S  /usr/bin/dotnet run --project Web.csproj\n  bad line\n")

	assert.Equal(t, []OsProcess{
		{Pid: 1, PPid: 0, State: "S", Executable: "init"},
		{Pid: 812, PPid: 1, State: "S", Executable: "dotnet"},
	}, parsePsOutput(output))
}

func TestStartProcessMergesEnvironmentAndCapturesOutput(t *testing.T) {
	executor := NewProcessExecutor(log.NewMockLog())
	var out bytes.Buffer

	process, err := executor.Start(&ProcessConfig{
		Path:   "sh",
		Args:   []string{"-c", "echo $SERVERHOST_TEST_VALUE; pwd"},
		Dir:    os.TempDir(),
		Env:    map[string]string{"SERVERHOST_TEST_VALUE": "from-override"},
		Stdout: &out,
	})

	require.NoError(t, err)
	select {
	case <-process.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process did not exit")
	}
	assert.NoError(t, process.ExitErr())
	assert.Contains(t, out.String(), "from-override")
}

func TestKillProcessGroup(t *testing.T) {
	executor := NewProcessExecutor(log.NewMockLog())

	process, err := executor.Start(&ProcessConfig{Path: "sh", Args: []string{"-c", "sleep 30 & sleep 30"}})
	require.NoError(t, err)

	assert.NoError(t, executor.Kill(process.Pid))
	select {
	case <-process.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("process survived kill")
	}
	assert.True(t, process.Exited())
	assert.NoError(t, process.Kill())
}

func TestStartFailsForMissingExecutable(t *testing.T) {
	executor := NewProcessExecutor(log.NewMockLog())

	_, err := executor.Start(&ProcessConfig{Path: "serverhost-no-such-binary"})

	assert.Error(t, err)
}

func TestExecutableName(t *testing.T) {
	executor := NewProcessExecutor(log.NewMockLog())
	process, err := executor.Start(&ProcessConfig{Path: "sleep", Args: []string{"5"}})
	require.NoError(t, err)
	defer process.Kill()

	name, err := executor.ExecutableName(process.Pid)

	assert.NoError(t, err)
	assert.Equal(t, "sleep", name)
}
