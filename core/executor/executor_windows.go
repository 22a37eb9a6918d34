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

//go:build windows
// +build windows

package executor

import (
	"os"
	"os/exec"
	"strconv"

	ps "github.com/mitchellh/go-ps"
)

func prepareProcess(command *exec.Cmd) {
	// nothing to do on windows
}

// killProcess kills the process tree rooted at process, falling back to the process alone.
func killProcess(process *os.Process) error {
	if err := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(process.Pid)).Run(); err == nil {
		return nil
	}
	return process.Kill()
}

var getProcess = func() ([]OsProcess, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	results := make([]OsProcess, 0, len(processes))
	for _, process := range processes {
		results = append(results, OsProcess{Pid: process.Pid(), PPid: process.PPid(), Executable: process.Executable()})
	}

	return results, nil
}
