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

package executor

import (
	"fmt"
	"testing"

	"github.com/serverhost/serverhost/agent/log"
	"github.com/stretchr/testify/assert"
)

func TestIsPidRunning(t *testing.T) {
	exec := NewProcessExecutor(log.NewMockLog())

	oldGetProcess := getProcess
	getProcess = func() ([]OsProcess, error) {
		return []OsProcess{
			{1, 2, "exe", "R"},
			{3, 4, "exe", "R"},
			{5, 6, "exe", "Z"},
		}, nil
	}
	defer func() { getProcess = oldGetProcess }()

	isRunning, err := exec.IsPidRunning(1)
	assert.True(t, isRunning)
	assert.Nil(t, err)

	isRunning, err = exec.IsPidRunning(2)
	assert.False(t, isRunning)
	assert.Nil(t, err)

	isRunning, err = exec.IsPidRunning(5)
	assert.False(t, isRunning)
	assert.Nil(t, err)

	isRunning, err = exec.IsPidRunning(0)
	assert.False(t, isRunning)
	assert.Nil(t, err)
}

func TestIsPidRunningButError(t *testing.T) {
	exec := NewProcessExecutor(log.NewMockLog())

	errMsg := "Some Error"

	oldGetProcess := getProcess
	getProcess = func() ([]OsProcess, error) {
		return nil, fmt.Errorf(errMsg)
	}
	defer func() { getProcess = oldGetProcess }()

	isRunning, err := exec.IsPidRunning(1)
	assert.False(t, isRunning)
	assert.NotNil(t, err)
	assert.Equal(t, errMsg, fmt.Sprint(err))
}

func TestKillRejectsNonPositivePid(t *testing.T) {
	exec := NewProcessExecutor(log.NewMockLog())

	assert.Error(t, exec.Kill(0))
	assert.Error(t, exec.Kill(-1))
}

func TestIsDescendant(t *testing.T) {
	processes := []OsProcess{
		{Pid: 100, PPid: 1},
		{Pid: 200, PPid: 100},
		{Pid: 300, PPid: 200},
		{Pid: 400, PPid: 1},
		// cycle guard
		{Pid: 500, PPid: 600},
		{Pid: 600, PPid: 500},
	}

	assert.True(t, IsDescendant(processes, 100, 100))
	assert.True(t, IsDescendant(processes, 300, 100))
	assert.False(t, IsDescendant(processes, 400, 100))
	assert.False(t, IsDescendant(processes, 500, 100))
	assert.False(t, IsDescendant(processes, 300, 0))
}

func TestMergeEnvironment(t *testing.T) {
	inherited := []string{"PATH=/usr/bin", "HOME=/home/ci", "aspnetcore_urls=http://old", "ASPNETCORE_HOSTINGSTARTUPASSEMBLIES=Spa", "EMPTY"}
	overrides := map[string]string{"ASPNETCORE_URLS": "http://localhost:5001", "NEW": "1"}

	merged := MergeEnvironment(inherited, overrides, []string{"aspnetcore_hostingstartupassemblies"})

	assert.Equal(t, []string{
		"PATH=/usr/bin",
		"HOME=/home/ci",
		"EMPTY",
		"ASPNETCORE_URLS=http://localhost:5001",
		"NEW=1",
	}, merged)
}

func TestFakeExecutorLifecycle(t *testing.T) {
	fake := NewFakeExecutor()

	process, err := fake.Start(&ProcessConfig{Path: "/usr/bin/dotnet"})
	assert.NoError(t, err)
	name, _ := fake.ExecutableName(process.Pid)
	assert.Equal(t, "dotnet", name)
	fake.AddProcess(process.Pid+1, process.Pid, "child", process.StartedAt)

	assert.NoError(t, fake.Kill(process.Pid))
	<-process.Done()
	running, _ := fake.IsPidRunning(process.Pid + 1)
	assert.False(t, running)
	assert.Error(t, process.ExitErr())
}
