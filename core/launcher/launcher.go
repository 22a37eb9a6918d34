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

// Package launcher starts one server process and drives it to ready or failed.
package launcher

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/fileutil"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/serverhost/serverhost/core/command"
	"github.com/serverhost/serverhost/core/executor"
	"github.com/serverhost/serverhost/core/metrics"
	"github.com/serverhost/serverhost/core/output"
	"github.com/serverhost/serverhost/core/portfinder"
	"github.com/serverhost/serverhost/core/readiness"
	"github.com/serverhost/serverhost/core/registry"
	"github.com/twinj/uuid"
)

// stopWaitTimeout bounds how long Stop waits for a killed process to be reaped.
const stopWaitTimeout = 10 * time.Second

// EntryPathResolver fills in the entry path of a specification that asks for it to be located.
type EntryPathResolver interface {
	Resolve(spec launchspec.Spec) (launchspec.Spec, error)
}

// Launcher runs one launch attempt: build the command, optionally reap orphans, spawn, record the
// process, and wait for readiness.
type Launcher struct {
	log       log.T
	clock     times.Clock
	exec      executor.IExecutor
	registry  registry.Registry
	probe     readiness.Probe
	builders  command.Table
	resolver  EntryPathResolver
	metrics   *metrics.Collector
	ownerID   string
	tailLines int

	mu         sync.Mutex
	state      State
	spec       launchspec.Spec
	entry      registry.Entry
	process    *executor.Process
	buffer     *output.Buffer
	outputFile *os.File
}

// NewLauncher creates a launcher. resolver may be nil when entry paths are always given.
func NewLauncher(
	ctx context.T,
	exec executor.IExecutor,
	reg registry.Registry,
	probe readiness.Probe,
	builders command.Table,
	resolver EntryPathResolver,
	collector *metrics.Collector) *Launcher {

	return &Launcher{
		log:       ctx.With("[Launcher]").Log(),
		clock:     ctx.Clock(),
		exec:      exec,
		registry:  reg,
		probe:     probe,
		builders:  builders,
		resolver:  resolver,
		metrics:   collector,
		ownerID:   uuid.NewV4().String(),
		tailLines: ctx.AppConfig().Launch.OutputBufferLines,
	}
}

// OwnerID identifies this launcher in the registry entries it writes.
func (l *Launcher) OwnerID() string {
	return l.ownerID
}

// State returns the state of the launch attempt.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Entry returns the registry entry of the launched server.
func (l *Launcher) Entry() registry.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entry
}

// RecentOutput returns the last lines the server wrote.
func (l *Launcher) RecentOutput() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return output.Recent(l.buffer, l.spec.OutputFile(), l.tailLines)
}

// Launch starts the server described by spec and blocks until it is ready or the attempt failed.
// A specification without anything to start is only probed and recorded with pid 0.
func (l *Launcher) Launch(spec launchspec.Spec) (registry.Entry, error) {
	l.mu.Lock()
	if l.state == Starting || l.state == Ready {
		l.mu.Unlock()
		return registry.Entry{}, fmt.Errorf("launcher is already %v", l.state)
	}
	l.state = Starting
	l.spec = spec
	l.entry = registry.Entry{}
	l.process = nil
	l.buffer = nil
	l.mu.Unlock()

	start := l.clock.Now()
	fail := func(err error) (registry.Entry, error) {
		return registry.Entry{}, l.fail(spec, start, err)
	}

	if spec.NeedsEntryPath() {
		if l.resolver == nil {
			return fail(&launchspec.ValidationError{Field: "entryPath", Reason: "is required and no project locator is configured"})
		}
		resolved, err := l.resolver.Resolve(spec)
		if err != nil {
			return fail(err)
		}
		spec = resolved
		l.setSpec(spec)
	}

	cmd, err := l.builders.Build(spec)
	if errors.Is(err, command.ErrNoCommand) {
		return l.attach(spec, start)
	}
	if err != nil {
		return fail(err)
	}

	if spec.KillOrphansOnStart() {
		killed, err := l.registry.KillOrphans(spec.AllPorts()...)
		if errors.Is(err, portfinder.ErrUnsupportedPlatform) {
			return fail(err)
		}
		if err != nil {
			l.log.Warnf("Failed to kill orphans on ports %v, %v", spec.AllPorts(), err)
		} else if len(killed) > 0 {
			l.log.Infof("Killed orphaned processes %v", killed)
		}
	}

	argv, err := cmd.Argv()
	if err != nil {
		return fail(err)
	}
	stdout, err := l.openOutput(spec)
	if err != nil {
		return fail(err)
	}

	l.log.Infof("Starting %v server for %v: %v", spec.Kind(), spec.BaseURL(), cmd.String())
	process, err := l.exec.Start(&executor.ProcessConfig{
		Path:   cmd.Executable,
		Args:   argv,
		Dir:    spec.WorkingDir(),
		Env:    cmd.Env,
		Unset:  cmd.Unset,
		Stdout: stdout,
		Stderr: stdout,
	})
	if err != nil {
		return fail(&SpawnError{Executable: cmd.Executable, Err: err})
	}

	entry := registry.Entry{
		PID:        process.Pid,
		StartedAt:  process.StartedAt,
		BaseURL:    spec.BaseURL(),
		Port:       spec.Port(),
		Ports:      spec.AllPorts(),
		ConfigHash: spec.ConfigHash(),
		Kind:       string(spec.Kind()),
		Executable: l.executableName(process.Pid, cmd.Executable),
		OwnerID:    l.ownerID,
	}
	if startedAt, err := l.exec.StartTime(process.Pid); err == nil {
		entry.StartedAt = startedAt
	}

	l.mu.Lock()
	l.process = process
	l.entry = entry
	l.mu.Unlock()

	if err = l.registry.Save(entry); err != nil {
		return fail(err)
	}

	if err = l.probe.WaitUntilReady(spec, process.Done()); err != nil {
		if process.Exited() {
			err = fmt.Errorf("%w (%v)", readiness.ErrProcessExited, exitReason(process))
		}
		return fail(err)
	}
	if err = l.registry.UpdateWithReady(entry.ConfigHash); err != nil {
		return fail(err)
	}

	entry.Healthy = true
	elapsed := times.Since(l.clock, start)
	l.mu.Lock()
	l.entry = entry
	l.state = Ready
	l.mu.Unlock()
	l.metrics.Launch(string(spec.Kind()), metrics.OutcomeReady, elapsed)
	l.log.Infof("Server %v (pid %v, config %v) ready after %v", spec.BaseURL(), entry.PID, entry.ConfigHash, elapsed)
	return entry, nil
}

// attach waits for a server that is started elsewhere and records it with pid 0.
func (l *Launcher) attach(spec launchspec.Spec, start time.Time) (registry.Entry, error) {
	l.log.Infof("Nothing to start for %v, waiting for the running server", spec.BaseURL())
	if err := l.probe.WaitUntilReady(spec, nil); err != nil {
		return registry.Entry{}, l.fail(spec, start, err)
	}

	entry := registry.Entry{
		StartedAt:  l.clock.Now(),
		BaseURL:    spec.BaseURL(),
		Port:       spec.Port(),
		Ports:      spec.AllPorts(),
		ConfigHash: spec.ConfigHash(),
		Kind:       string(spec.Kind()),
		OwnerID:    l.ownerID,
	}
	if err := l.registry.Save(entry); err != nil {
		return registry.Entry{}, l.fail(spec, start, err)
	}
	if err := l.registry.UpdateWithReady(entry.ConfigHash); err != nil {
		return registry.Entry{}, l.fail(spec, start, err)
	}

	entry.Healthy = true
	elapsed := times.Since(l.clock, start)
	l.mu.Lock()
	l.entry = entry
	l.state = Ready
	l.mu.Unlock()
	l.metrics.Launch(string(spec.Kind()), metrics.OutcomeReady, elapsed)
	return entry, nil
}

// Stop kills the process this launcher started and forgets its registry entry. Servers it attached
// to are only forgotten.
func (l *Launcher) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == NotStarted || l.state == Stopped {
		return nil
	}

	var err error
	if l.process != nil {
		err = l.killLocked()
	}
	if l.entry.ConfigHash != "" {
		if deleteErr := l.registry.Delete(l.entry.ConfigHash); deleteErr != nil && err == nil {
			err = deleteErr
		}
	}
	l.closeOutputLocked()
	l.state = Stopped
	return err
}

func (l *Launcher) fail(spec launchspec.Spec, start time.Time, cause error) error {
	l.mu.Lock()
	if l.process != nil {
		if err := l.killLocked(); err != nil {
			l.log.Warnf("Failed to kill server process %v, %v", l.process.Pid, err)
		}
		if err := l.registry.Delete(l.entry.ConfigHash); err != nil {
			l.log.Warnf("Failed to delete registry entry %v, %v", l.entry.ConfigHash, err)
		}
	}
	if l.buffer != nil {
		l.buffer.Flush()
	}
	l.closeOutputLocked()
	state := l.state
	l.state = Failed
	recent := output.Recent(l.buffer, l.spec.OutputFile(), l.tailLines)
	l.mu.Unlock()

	elapsed := times.Since(l.clock, start)
	outcome := metrics.OutcomeFailed
	if errors.Is(cause, readiness.ErrTimeout) {
		outcome = metrics.OutcomeTimeout
	}
	l.metrics.Launch(string(spec.Kind()), outcome, elapsed)

	launchErr := &LaunchError{
		Kind:         spec.Kind(),
		ConfigHash:   spec.ConfigHash(),
		Port:         spec.Port(),
		Elapsed:      elapsed,
		State:        state,
		RecentOutput: recent,
		Err:          cause,
	}
	l.log.Errorf("%v", launchErr)
	return launchErr
}

func (l *Launcher) killLocked() error {
	process := l.process
	if process.Exited() {
		return nil
	}
	if err := l.exec.Kill(process.Pid); err != nil && !process.Exited() {
		return err
	}
	select {
	case <-process.Done():
	case <-l.clock.After(stopWaitTimeout):
		return fmt.Errorf("process %v did not exit within %v", process.Pid, stopWaitTimeout)
	}
	l.log.Infof("Stopped server process %v", process.Pid)
	return nil
}

func (l *Launcher) openOutput(spec launchspec.Spec) (io.Writer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if spec.OutputFile() != "" {
		file, err := fileutil.OpenOutputFile(spec.OutputFile())
		if err != nil {
			return nil, fmt.Errorf("failed to open output file %v, %v", spec.OutputFile(), err)
		}
		l.outputFile = file
		return file, nil
	}

	var stream log.T
	if spec.StreamOutput() {
		stream = l.log.WithContext(fmt.Sprintf("[%v]", spec.Kind()))
	}
	l.buffer = output.NewBuffer(l.tailLines, stream)
	return l.buffer, nil
}

func (l *Launcher) closeOutputLocked() {
	if l.outputFile != nil {
		l.outputFile.Close()
		l.outputFile = nil
	}
}

func (l *Launcher) setSpec(spec launchspec.Spec) {
	l.mu.Lock()
	l.spec = spec
	l.mu.Unlock()
}

func (l *Launcher) executableName(pid int, executable string) string {
	if name, err := l.exec.ExecutableName(pid); err == nil && name != "" {
		return name
	}
	return filepath.Base(executable)
}

func exitReason(process *executor.Process) string {
	if err := process.ExitErr(); err != nil {
		return err.Error()
	}
	return "exit status 0"
}
