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

// Package portfinder lists the processes listening on a TCP port using the platform's network
// statistics tool.
package portfinder

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/serverhost/serverhost/agent/log"
)

// ErrUnsupportedPlatform is matched by UnsupportedPlatformError.
var ErrUnsupportedPlatform = errors.New("no supported network statistics tool")

// UnsupportedPlatformError is returned when the operating system has no known network statistics tool.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%v on %v", ErrUnsupportedPlatform, e.GOOS)
}

// Unwrap makes errors.Is(err, ErrUnsupportedPlatform) hold.
func (e *UnsupportedPlatformError) Unwrap() error {
	return ErrUnsupportedPlatform
}

// Finder finds the processes bound to a TCP port.
type Finder interface {
	FindProcessesOnPort(port int) ([]int, error)
}

// tool is the command and output layout of one platform's network statistics tool.
type tool struct {
	name string
	args []string
	// addressField is the index of the local address column, or -1 to match anywhere on the line.
	addressField int
	pid          func(fields []string, line string) (int, bool)
}

var ssPidPattern = regexp.MustCompile(`pid=(\d+)`)

var lsof = tool{
	name:         "lsof",
	args:         []string{"-nP", "-iTCP", "-sTCP:LISTEN"},
	addressField: 8,
	pid:          secondField,
}

// tools lists, per GOOS, the tools tried in order until one is installed.
var tools = map[string][]tool{
	"windows": {{
		name:         "netstat",
		args:         []string{"-ano"},
		addressField: 1,
		pid:          lastField,
	}},
	"linux": {{
		name:         "ss",
		args:         []string{"-H", "-t", "-l", "-n", "-p"},
		addressField: 3,
		pid: func(fields []string, line string) (int, bool) {
			match := ssPidPattern.FindStringSubmatch(line)
			if match == nil {
				return 0, false
			}
			pid, err := strconv.Atoi(match[1])
			return pid, err == nil
		},
	}, {
		name:         "netstat",
		args:         []string{"-t", "-l", "-n", "-p"},
		addressField: 3,
		pid: func(fields []string, line string) (int, bool) {
			// last column is "<pid>/<program>"
			pid, err := strconv.Atoi(strings.SplitN(fields[len(fields)-1], "/", 2)[0])
			return pid, err == nil
		},
	}},
	"darwin":  {lsof},
	"freebsd": {lsof},
}

// NetstatFinder runs the network statistics tool of the current platform.
type NetstatFinder struct {
	log  log.T
	goos string
	run  func(name string, args ...string) ([]byte, error)
}

// NewNetstatFinder returns a Finder for the running operating system.
func NewNetstatFinder(log log.T) *NetstatFinder {
	return NewNetstatFinderFor(log, runtime.GOOS, runTool)
}

// NewNetstatFinderFor returns a Finder for goos running tools through run.
func NewNetstatFinderFor(log log.T, goos string, run func(name string, args ...string) ([]byte, error)) *NetstatFinder {
	return &NetstatFinder{log: log, goos: goos, run: run}
}

func runTool(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// FindProcessesOnPort returns the distinct pids listening on port, sorted.
func (f *NetstatFinder) FindProcessesOnPort(port int) ([]int, error) {
	candidates, ok := tools[f.goos]
	if !ok {
		return nil, &UnsupportedPlatformError{GOOS: f.goos}
	}

	for _, t := range candidates {
		output, err := f.run(t.name, t.args...)
		if errors.Is(err, exec.ErrNotFound) {
			f.log.Debugf("%v is not installed", t.name)
			continue
		}
		if err != nil {
			// lsof exits 1 when nothing matches
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) && t.name == "lsof" && exitErr.ExitCode() == 1 && len(output) == 0 {
				return []int{}, nil
			}
			return nil, fmt.Errorf("failed to run %v, %v", t.name, err)
		}

		pids := parseListeners(string(output), port, t)
		f.log.Debugf("%v found %v listening on port %v", t.name, pids, port)
		return pids, nil
	}
	return nil, &UnsupportedPlatformError{GOOS: f.goos}
}

// parseListeners extracts the pids of lines whose local address ends in :<port>.
func parseListeners(output string, port int, t tool) []int {
	pattern := portPattern(port)
	seen := map[int]bool{}
	pids := []int{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		subject := line
		if t.addressField >= 0 {
			if t.addressField >= len(fields) {
				continue
			}
			subject = fields[t.addressField]
		}
		if !pattern.MatchString(subject) {
			continue
		}

		pid, ok := t.pid(fields, line)
		if !ok || pid <= 0 || seen[pid] {
			continue
		}
		seen[pid] = true
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

// portPattern matches ":<port>" followed by whitespace or end of input, never a longer port number.
func portPattern(port int) *regexp.Regexp {
	return regexp.MustCompile(`:` + strconv.Itoa(port) + `(?:[ \t]|$)`)
}

func lastField(fields []string, line string) (int, bool) {
	pid, err := strconv.Atoi(fields[len(fields)-1])
	return pid, err == nil
}

func secondField(fields []string, line string) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	pid, err := strconv.Atoi(fields[1])
	return pid, err == nil
}
