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
	"os"
	"os/exec"
	"path"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"
)

// Collect processes in these states when querying from /Proc
var acceptedStates = map[string]bool{
	"R": true, // Running/Runnable
	"S": true, // Interruptible sleep
	"D": true, // uninterruptible sleep
	"Z": true, // zombie
}

func prepareProcess(command *exec.Cmd) {
	// make the process the leader of its process group
	// (otherwise we cannot kill it properly)
	command.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess kills the process group led by process, which covers everything a server started
// through a package manager or build tool. Processes that do not lead a group are killed alone.
func killProcess(process *os.Process) error {
	if err := unix.Kill(-process.Pid, unix.SIGKILL); err == nil {
		return nil
	}
	err := unix.Kill(process.Pid, unix.SIGKILL)
	if err == unix.ESRCH {
		return nil
	}
	return err
}

// Unix man: http://www.skrenta.com/rt/man/ps.1.html , return the process table of the current user
var listProcessPs = func() ([]byte, error) {
	return exec.Command("ps", "-e", "-o", "pid,ppid,state,command").CombinedOutput()
}

// Unix man: http://man7.org/linux/man-pages/man5/proc.5.html
// listProcessProc is a fallback function for when listProcessPs fails, it reads the /proc folder for process information
var listProcessProc = func() ([]OsProcess, error) {
	var procFolder = "/proc"
	var currProcUid = uint32(os.Geteuid())
	var results []OsProcess

	entries, err := os.ReadDir(procFolder)
	if err != nil {
		return results, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		// Read the cmdline file to extract the command used to start the process
		cmd, err := os.ReadFile(path.Join(procFolder, entry.Name(), "cmdline"))
		if err != nil || len(cmd) == 0 {
			continue
		}

		// Check owner of process, ignore check if cast fails
		if info, err := entry.Info(); err == nil {
			if stat, ok := info.Sys().(*syscall.Stat_t); ok && stat.Uid != currProcUid {
				continue
			}
		}

		stat, err := os.ReadFile(path.Join(procFolder, entry.Name(), "stat"))
		if err != nil {
			continue
		}
		// the command name is parenthesized and may contain spaces
		fields := strings.Fields(string(stat[bytes.LastIndexByte(stat, ')')+1:]))
		if len(fields) < 2 {
			continue
		}

		state := fields[0]
		if !acceptedStates[state] {
			continue
		}
		ppid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		// split at null character
		cmdString := string(bytes.SplitN(cmd, []byte{0}, 2)[0])
		results = append(results, OsProcess{Pid: pid, PPid: ppid, State: state, Executable: path.Base(cmdString)})
	}
	return results, nil
}

var getProcess = func() ([]OsProcess, error) {
	output, err := listProcessPs()
	if err != nil {
		// Default to Proc if ps fails
		return listProcessProc()
	}
	return parsePsOutput(output), nil
}

func parsePsOutput(output []byte) []OsProcess {
	var results []OsProcess
	procList := strings.Split(string(output), "\n")
	for i := 1; i < len(procList); i++ {
		parts := strings.Fields(procList[i])
		if len(parts) < 4 {
			continue
		}
		pid, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}

		ppid, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}

		state := parts[2]
		if len(state) > 1 {
			state = string(state[0])
		}

		results = append(results, OsProcess{Pid: pid, PPid: ppid, State: state, Executable: path.Base(parts[3])})
	}
	return results
}
