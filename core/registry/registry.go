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

// Package registry persists the servers started by any process on the host and reaps the listeners
// those records no longer account for.
package registry

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/jsonutil"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/serverhost/serverhost/core/executor"
	"github.com/serverhost/serverhost/core/metrics"
	"github.com/serverhost/serverhost/core/portfinder"
	"github.com/serverhost/serverhost/core/registry/datastore"
)

// startTimeTolerance is how far the OS reported start time may be from the recorded one for the
// same process.
const startTimeTolerance = 5 * time.Second

// ErrNotSaved is returned when an entry is updated before it was saved.
var ErrNotSaved = errors.New("no registry entry saved for configuration hash")

var validHash = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var selfPid = os.Getpid

// Registry is the durable store of server processes shared by every test run on the host.
type Registry interface {
	Save(entry Entry) error
	TryLoad(hash string) (Entry, bool, error)
	UpdateWithReady(hash string) error
	Delete(hash string) error
	TryKill(pid int) bool
	KillOrphans(extraPorts ...int) ([]int, error)
	Entries() ([]Entry, error)
	FindByPort(port int) ([]Entry, error)
	IsAlive(entry Entry) bool
}

// ProcessRegistry stores entries in a datastore and checks them against the live process table.
type ProcessRegistry struct {
	log     log.T
	clock   times.Clock
	store   datastore.IStore
	exec    executor.IExecutor
	finder  portfinder.Finder
	metrics *metrics.Collector
}

// NewProcessRegistry creates a registry over store.
func NewProcessRegistry(
	ctx context.T,
	store datastore.IStore,
	exec executor.IExecutor,
	finder portfinder.Finder,
	collector *metrics.Collector) *ProcessRegistry {

	return &ProcessRegistry{
		log:     ctx.With("[ProcessRegistry]").Log(),
		clock:   ctx.Clock(),
		store:   store,
		exec:    exec,
		finder:  finder,
		metrics: collector,
	}
}

// NewDefaultProcessRegistry creates a registry in the configured registry directory.
func NewDefaultProcessRegistry(
	ctx context.T,
	exec executor.IExecutor,
	finder portfinder.Finder,
	collector *metrics.Collector) *ProcessRegistry {

	store := datastore.NewLocalFileStore(ctx.Log(), ctx.AppConfig().Registry.Directory)
	return NewProcessRegistry(ctx, store, exec, finder, collector)
}

// Save persists a freshly spawned process. The entry is stored as not healthy.
func (r *ProcessRegistry) Save(entry Entry) error {
	if err := checkHash(entry.ConfigHash); err != nil {
		return err
	}
	entry.Healthy = false
	if entry.StartedAt.IsZero() {
		entry.StartedAt = r.clock.Now()
	}
	if err := r.write(entry); err != nil {
		return err
	}
	r.log.Debugf("Saved pid %v for %v on port %v", entry.PID, entry.ConfigHash, entry.Port)
	return nil
}

// TryLoad returns the entry saved for hash. An unreadable entry is discarded and reported as missing.
func (r *ProcessRegistry) TryLoad(hash string) (Entry, bool, error) {
	if err := checkHash(hash); err != nil {
		return Entry{}, false, err
	}
	content, err := r.store.Read(hash)
	if errors.Is(err, datastore.ErrNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var entry Entry
	if err = jsonutil.Unmarshal(string(content), &entry); err != nil {
		r.log.Warnf("Discarding unreadable registry entry %v, %v", hash, err)
		if err = r.store.Delete(hash); err != nil {
			r.log.Warnf("Failed to delete registry entry %v, %v", hash, err)
		}
		return Entry{}, false, nil
	}
	if entry.ConfigHash == "" {
		entry.ConfigHash = hash
	}
	return entry, true, nil
}

// UpdateWithReady marks the entry saved for hash as healthy.
func (r *ProcessRegistry) UpdateWithReady(hash string) error {
	entry, found, err := r.TryLoad(hash)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %v", ErrNotSaved, hash)
	}
	if entry.Healthy {
		return nil
	}
	entry.Healthy = true
	return r.write(entry)
}

// Delete forgets the entry saved for hash.
func (r *ProcessRegistry) Delete(hash string) error {
	if err := checkHash(hash); err != nil {
		return err
	}
	return r.store.Delete(hash)
}

// TryKill kills pid and reports whether it is gone. Pids <= 0 are never signalled.
func (r *ProcessRegistry) TryKill(pid int) bool {
	if pid <= 0 {
		return true
	}
	running, err := r.exec.IsPidRunning(pid)
	if err == nil && !running {
		return true
	}
	if err = r.exec.Kill(pid); err != nil {
		r.log.Warnf("Failed to kill process %v, %v", pid, err)
		running, err = r.exec.IsPidRunning(pid)
		return err == nil && !running
	}
	r.log.Infof("Killed process %v", pid)
	return true
}

// Entries returns every readable entry, ordered by configuration hash.
func (r *ProcessRegistry) Entries() ([]Entry, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return nil, err
	}
	entries := []Entry{}
	for _, key := range keys {
		if !validHash.MatchString(key) {
			continue
		}
		entry, found, err := r.TryLoad(key)
		if err != nil {
			r.log.Warnf("Failed to load registry entry %v, %v", key, err)
			continue
		}
		if found {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// FindByPort returns the entries recording port.
func (r *ProcessRegistry) FindByPort(port int) ([]Entry, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}
	matches := []Entry{}
	for _, entry := range entries {
		if entry.UsesPort(port) {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

// IsAlive reports whether the entry's pid still belongs to the process that was saved. A recycled
// pid is detected by its start time, or by its executable name where start times are unavailable.
func (r *ProcessRegistry) IsAlive(entry Entry) bool {
	if entry.PID <= 0 {
		return false
	}
	if running, err := r.exec.IsPidRunning(entry.PID); err != nil || !running {
		return false
	}

	startTime, err := r.exec.StartTime(entry.PID)
	if err == nil {
		return times.WithinTolerance(startTime, entry.StartedAt, startTimeTolerance)
	}
	if !errors.Is(err, executor.ErrStartTimeUnavailable) {
		r.log.Debugf("Failed to read start time of pid %v, %v", entry.PID, err)
		return false
	}
	if entry.Executable == "" {
		return true
	}
	name, err := r.exec.ExecutableName(entry.PID)
	if err != nil {
		return false
	}
	return sameExecutable(name, entry.Executable)
}

// KillOrphans deletes entries whose process is gone, then kills every listener on a recorded port
// (or one of extraPorts) that is neither a live recorded process nor one of its descendants. Ports of
// attach-only entries are left alone. It returns the killed pids.
func (r *ProcessRegistry) KillOrphans(extraPorts ...int) ([]int, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}

	ports := map[int]bool{}
	protected := map[int]bool{}
	live := []int{}
	for _, entry := range entries {
		if entry.AttachOnly() {
			for _, port := range entry.AllPorts() {
				protected[port] = true
			}
			continue
		}
		for _, port := range entry.AllPorts() {
			ports[port] = true
		}
		if r.IsAlive(entry) {
			live = append(live, entry.PID)
			continue
		}
		r.log.Infof("Removing stale entry %v (pid %v)", entry.ConfigHash, entry.PID)
		if err := r.store.Delete(entry.ConfigHash); err != nil {
			r.log.Warnf("Failed to delete registry entry %v, %v", entry.ConfigHash, err)
		}
	}
	for _, port := range extraPorts {
		if port > 0 {
			ports[port] = true
		}
	}

	processes, err := r.exec.Processes()
	if err != nil {
		r.log.Warnf("Failed to list processes, descendants of recorded servers cannot be recognised, %v", err)
	}
	self := selfPid()

	killed := []int{}
	for _, port := range sortedKeys(ports) {
		if protected[port] {
			r.log.Debugf("Skipping port %v, it belongs to an attached server", port)
			continue
		}
		pids, err := r.finder.FindProcessesOnPort(port)
		if err != nil {
			if errors.Is(err, portfinder.ErrUnsupportedPlatform) {
				r.metrics.OrphansKilled(len(killed))
				return killed, err
			}
			r.log.Warnf("Failed to find listeners on port %v, %v", port, err)
			continue
		}
		for _, pid := range pids {
			if related(processes, self, pid) {
				continue
			}
			if ownedBy(processes, pid, live) {
				continue
			}
			r.log.Infof("Killing orphan pid %v listening on port %v", pid, port)
			if r.TryKill(pid) {
				killed = append(killed, pid)
			}
		}
	}

	r.metrics.OrphansKilled(len(killed))
	sort.Ints(killed)
	return killed, nil
}

func (r *ProcessRegistry) write(entry Entry) error {
	content, err := jsonutil.MarshalIndent(entry)
	if err != nil {
		return fmt.Errorf("failed to encode registry entry %v, %v", entry.ConfigHash, err)
	}
	return r.store.Write(entry.ConfigHash, []byte(content))
}

func checkHash(hash string) error {
	if !validHash.MatchString(hash) {
		return fmt.Errorf("invalid configuration hash %q", hash)
	}
	return nil
}

// related reports whether pid is self, an ancestor of self (the test runner that started us) or a
// descendant of self (a server this process is launching but has not recorded yet).
func related(processes []executor.OsProcess, self int, pid int) bool {
	return executor.IsDescendant(processes, self, pid) || executor.IsDescendant(processes, pid, self)
}

func ownedBy(processes []executor.OsProcess, pid int, live []int) bool {
	for _, owner := range live {
		if pid == owner || executor.IsDescendant(processes, pid, owner) {
			return true
		}
	}
	return false
}

func sameExecutable(a, b string) bool {
	trim := func(name string) string {
		return strings.TrimSuffix(strings.ToLower(name), ".exe")
	}
	return trim(a) == trim(b)
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
