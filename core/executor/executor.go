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

// Package executor starts, enumerates and kills operating system processes.
package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-ps"
	"github.com/serverhost/serverhost/agent/log"
)

// ErrStartTimeUnavailable is returned by StartTime on platforms without a process start time source.
var ErrStartTimeUnavailable = errors.New("process start time is not available on this platform")

// OsProcess represent the process information, such as pid and binary name
type OsProcess struct {
	Pid        int
	PPid       int
	Executable string
	State      string
}

// ProcessConfig describes a process to start.
type ProcessConfig struct {
	Path string
	Args []string
	Dir  string
	// Env overrides are layered over the inherited environment; keys match case-insensitively.
	Env map[string]string
	// Unset removes inherited variables.
	Unset  []string
	Stdout io.Writer
	Stderr io.Writer
}

// IExecutor is the interface type for ProcessExecutor.
type IExecutor interface {
	Start(*ProcessConfig) (*Process, error)
	Processes() ([]OsProcess, error)
	IsPidRunning(pid int) (bool, error)
	Kill(pid int) error
	StartTime(pid int) (time.Time, error)
	ExecutableName(pid int) (string, error)
}

// Process is a child process started by ProcessExecutor.
type Process struct {
	Pid       int
	StartedAt time.Time

	cmd     *exec.Cmd
	done    chan struct{}
	exitErr error
	once    sync.Once
}

// Done is closed once the process has exited and its resources were released.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// ExitErr returns the error reported by the process exit. Only meaningful after Done is closed.
func (p *Process) ExitErr() error {
	<-p.done
	return p.exitErr
}

// Exited reports whether the process has already exited.
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Kill kills the process together with the processes it started and waits until it is gone.
func (p *Process) Kill() error {
	if p.Exited() {
		return nil
	}
	if err := killProcess(p.cmd.Process); err != nil && !p.Exited() {
		return fmt.Errorf("failed to kill process %v, %v", p.Pid, err)
	}
	<-p.done
	return nil
}

func (p *Process) wait() {
	p.once.Do(func() {
		go func() {
			p.exitErr = p.cmd.Wait()
			close(p.done)
		}()
	})
}

// ProcessExecutor is the operating system implementation of IExecutor.
type ProcessExecutor struct {
	log log.T
}

// NewProcessExecutor returns an executor logging to log.
func NewProcessExecutor(log log.T) *ProcessExecutor {
	return &ProcessExecutor{
		log: log,
	}
}

// Start starts the configured process in its own process group. The returned Process reaps the child
// when it exits.
func (exc *ProcessExecutor) Start(config *ProcessConfig) (*Process, error) {
	exc.log.Debugf("Starting process %v %v in %v", config.Path, config.Args, config.Dir)
	command := exec.Command(config.Path, config.Args...)
	command.Dir = config.Dir
	command.Env = MergeEnvironment(os.Environ(), config.Env, config.Unset)
	command.Stdout = config.Stdout
	command.Stderr = config.Stderr
	prepareProcess(command)

	if err := command.Start(); err != nil {
		return nil, err
	}

	process := &Process{
		Pid:       command.Process.Pid,
		StartedAt: time.Now(),
		cmd:       command,
		done:      make(chan struct{}),
	}
	process.wait()
	return process, nil
}

// Processes returns running processes on the instance
func (exc *ProcessExecutor) Processes() ([]OsProcess, error) {
	return getProcess()
}

// IsPidRunning returns true if process with pid is running
func (exc *ProcessExecutor) IsPidRunning(pid int) (bool, error) {
	if pid <= 0 {
		return false, nil
	}
	processes, err := getProcess()
	if err != nil {
		return false, err
	}

	for _, process := range processes {
		if process.Pid == pid {
			if process.State == "Z" {
				return false, nil
			}
			return true, nil
		}
	}
	return false, nil
}

// Kill kills the process with pid and, where the platform allows it, its process group.
func (exc *ProcessExecutor) Kill(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("refusing to kill pid %v", pid)
	}
	osProcess, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process %v, %s", pid, err)
	}

	exc.log.Debugf("Found process %v, terminating", pid)
	if err = killProcess(osProcess); err != nil {
		return fmt.Errorf("failed to kill process %v, %s", pid, err)
	}
	return nil
}

// StartTime returns the time the operating system started pid.
func (exc *ProcessExecutor) StartTime(pid int) (time.Time, error) {
	return processStartTime(pid)
}

// ExecutableName returns the executable name of pid, or "" if no such process exists.
func (exc *ProcessExecutor) ExecutableName(pid int) (string, error) {
	process, err := findProcess(pid)
	if err != nil {
		return "", fmt.Errorf("failed to look up process %v, %v", pid, err)
	}
	if process == nil {
		return "", nil
	}
	return process.Executable(), nil
}

var findProcess = ps.FindProcess

// IsDescendant reports whether pid is ancestor itself or one of its descendants in processes.
func IsDescendant(processes []OsProcess, pid int, ancestor int) bool {
	if ancestor <= 0 {
		return false
	}
	parents := make(map[int]int, len(processes))
	for _, process := range processes {
		parents[process.Pid] = process.PPid
	}

	visited := map[int]bool{}
	for current := pid; current > 0 && !visited[current]; current = parents[current] {
		if current == ancestor {
			return true
		}
		visited[current] = true
	}
	return false
}

// MergeEnvironment layers overrides over inherited "KEY=value" entries. Inherited entries whose key
// matches an override or an unset name case-insensitively are dropped; everything else is kept.
func MergeEnvironment(inherited []string, overrides map[string]string, unset []string) []string {
	removed := map[string]bool{}
	for key := range overrides {
		removed[strings.ToUpper(key)] = true
	}
	for _, key := range unset {
		removed[strings.ToUpper(key)] = true
	}

	merged := make([]string, 0, len(inherited)+len(overrides))
	for _, entry := range inherited {
		key := entry
		if i := strings.Index(entry, "="); i > 0 {
			key = entry[:i]
		}
		if !removed[strings.ToUpper(key)] {
			merged = append(merged, entry)
		}
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		merged = append(merged, fmtEnvVariable(key, overrides[key]))
	}
	return merged
}

// fmtEnvVariable creates the string to append to the current set of environment variables.
func fmtEnvVariable(name string, val string) string {
	return fmt.Sprintf("%s=%s", name, val)
}
