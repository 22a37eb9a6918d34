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
	"path/filepath"
	"sync"
	"time"
)

// Note: This code is used in the test files. However, this code is not in a _test.go file
// because then we would have to copy it in every test package that needs it.

// FakeExecutor is an in-memory IExecutor. Started processes never run anything; they stay alive until
// killed or until Exit is called.
type FakeExecutor struct {
	mu        sync.Mutex
	nextPid   int
	processes map[int]*fakeProcess
	// StartErr, when set, is returned by every Start call.
	StartErr error
	Started  []*ProcessConfig
	Killed   []int
}

type fakeProcess struct {
	os        OsProcess
	startedAt time.Time
	process   *Process
}

// NewFakeExecutor returns a FakeExecutor handing out pids from 1000.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{nextPid: 1000, processes: map[int]*fakeProcess{}}
}

// Start records config and registers a live process.
func (f *FakeExecutor) Start(config *ProcessConfig) (*Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Started = append(f.Started, config)
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	f.nextPid++
	process := &Process{Pid: f.nextPid, StartedAt: time.Now(), done: make(chan struct{})}
	f.processes[process.Pid] = &fakeProcess{
		os:        OsProcess{Pid: process.Pid, PPid: 1, Executable: filepath.Base(config.Path), State: "S"},
		startedAt: process.StartedAt,
		process:   process,
	}
	return process, nil
}

// AddProcess registers a process the fake did not start, e.g. a listener left by another run.
func (f *FakeExecutor) AddProcess(pid, ppid int, executable string, startedAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processes[pid] = &fakeProcess{
		os:        OsProcess{Pid: pid, PPid: ppid, Executable: executable, State: "S"},
		startedAt: startedAt,
	}
}

// Exit ends pid as if it terminated on its own with err.
func (f *FakeExecutor) Exit(pid int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remove(pid, err)
}

func (f *FakeExecutor) remove(pid int, err error) {
	p, ok := f.processes[pid]
	if !ok {
		return
	}
	delete(f.processes, pid)
	if p.process != nil && !p.process.Exited() {
		p.process.exitErr = err
		close(p.process.done)
	}
}

// Processes lists the live processes.
func (f *FakeExecutor) Processes() ([]OsProcess, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := make([]OsProcess, 0, len(f.processes))
	for _, p := range f.processes {
		list = append(list, p.os)
	}
	return list, nil
}

// IsPidRunning reports whether pid is live.
func (f *FakeExecutor) IsPidRunning(pid int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.processes[pid]
	return ok, nil
}

// Kill removes pid and the processes it started.
func (f *FakeExecutor) Kill(pid int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.processes[pid]; !ok {
		return fmt.Errorf("failed to find process %v", pid)
	}
	f.Killed = append(f.Killed, pid)
	for child, p := range f.processes {
		if p.os.PPid == pid {
			f.remove(child, fmt.Errorf("signal: killed"))
		}
	}
	f.remove(pid, fmt.Errorf("signal: killed"))
	return nil
}

// StartTime returns the recorded start time of pid.
func (f *FakeExecutor) StartTime(pid int) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.processes[pid]; ok {
		return p.startedAt, nil
	}
	return time.Time{}, fmt.Errorf("no process %v", pid)
}

// ExecutableName returns the executable of pid or "".
func (f *FakeExecutor) ExecutableName(pid int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.processes[pid]; ok {
		return p.os.Executable, nil
	}
	return "", nil
}
