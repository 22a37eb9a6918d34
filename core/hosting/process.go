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

package hosting

import (
	"errors"
	"fmt"
	"sync"

	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/serverhost/serverhost/core/launcher"
	"github.com/serverhost/serverhost/core/metrics"
	"github.com/serverhost/serverhost/core/registry"
	"golang.org/x/sync/singleflight"
)

// starts collapses concurrent starts of the same configuration inside the process.
var starts singleflight.Group

// startResult is shared by every caller collapsed into one start.
type startResult struct {
	entry  registry.Entry
	reused bool
}

// ProcessStrategy hosts servers run as a local OS process.
type ProcessStrategy struct {
	deps Dependencies
	spec launchspec.Spec

	mu       sync.Mutex
	launcher *launcher.Launcher
	entry    registry.Entry
	hash     string
	owned    bool
	started  bool
	reused   bool
}

func newProcessStrategy(spec launchspec.Spec, deps Dependencies) (Strategy, error) {
	if deps.Registry == nil || deps.Coordinator == nil || deps.Probe == nil || deps.Executor == nil {
		return nil, errors.New("process hosting needs a registry, coordinator, probe and executor")
	}
	return &ProcessStrategy{deps: deps, spec: spec}, nil
}

// Start reuses a healthy server started with the same configuration, or starts a new one.
func (s *ProcessStrategy) Start(logger log.T) (ServerStatus, error) {
	clock := s.deps.Context.Clock()
	begin := clock.Now()

	spec, err := s.resolve()
	if err != nil {
		return ServerStatus{}, &StartError{Port: s.spec.Port(), Elapsed: times.Since(clock, begin), Err: err}
	}
	hash := spec.ConfigHash()

	executed := false
	result, err, shared := starts.Do(hash, func() (interface{}, error) {
		executed = true
		return s.coordinate(spec, logger)
	})
	if err != nil {
		return ServerStatus{}, &StartError{ConfigHash: hash, Port: spec.Port(), Elapsed: times.Since(clock, begin), Err: err}
	}
	res := result.(startResult)
	if shared && !executed {
		logger.Debugf("Joined concurrent start of configuration %v", hash)
		res.reused = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = spec
	s.entry = res.entry
	s.started = true
	s.reused = res.reused
	if s.hash == "" {
		s.hash = hash
	}
	return s.statusLocked(), nil
}

func (s *ProcessStrategy) resolve() (launchspec.Spec, error) {
	if !s.spec.NeedsEntryPath() {
		return s.spec, nil
	}
	if s.deps.Locator == nil {
		return s.spec, &launchspec.ValidationError{Field: "entryPath", Reason: "not set and no project locator is configured"}
	}
	return s.deps.Locator.Resolve(s.spec)
}

func (s *ProcessStrategy) coordinate(spec launchspec.Spec, logger log.T) (interface{}, error) {
	var result startResult
	entry, ran, err := s.deps.Coordinator.Run(spec, func() (registry.Entry, error) {
		var startErr error
		result, startErr = s.startLocked(spec, logger)
		return result.entry, startErr
	})
	if err != nil {
		return nil, err
	}
	if !ran {
		logger.Infof("Server on %v was started by another process", spec.BaseURL())
		s.deps.Metrics.Reuse(string(spec.Kind()), metrics.ReasonOtherHolder)
		return startResult{entry: entry, reused: true}, nil
	}
	return result, nil
}

// startLocked runs under the start lock of the port.
func (s *ProcessStrategy) startLocked(spec launchspec.Spec, logger log.T) (startResult, error) {
	kind := string(spec.Kind())
	hash := spec.ConfigHash()

	if entry, ok := s.handleDrift(spec, logger); ok {
		s.deps.Metrics.Reuse(kind, metrics.ReasonDrift)
		return startResult{entry: entry, reused: true}, nil
	}

	entry, found, err := s.deps.Registry.TryLoad(hash)
	if err != nil {
		return startResult{}, err
	}
	if found {
		if s.reusable(spec, entry) {
			logger.Infof("Reusing server pid %v on %v (config %v)", entry.PID, entry.BaseURL, hash)
			s.deps.Metrics.Reuse(kind, metrics.ReasonHealthy)
			return startResult{entry: entry, reused: true}, nil
		}
		logger.Infof("Registered server pid %v for config %v is stale, starting a new one", entry.PID, hash)
		s.discard(entry)
	}

	l := launcher.NewLauncher(s.deps.Context, s.deps.Executor, s.deps.Registry, s.deps.Probe, s.deps.Builders,
		s.deps.Locator, s.deps.Metrics)
	entry, err = l.Launch(spec)
	if err != nil {
		return startResult{}, err
	}
	s.mu.Lock()
	s.launcher = l
	s.owned = true
	s.mu.Unlock()
	return startResult{entry: entry}, nil
}

func (s *ProcessStrategy) reusable(spec launchspec.Spec, entry registry.Entry) bool {
	if !entry.Healthy {
		return false
	}
	if !entry.AttachOnly() && !s.deps.Registry.IsAlive(entry) {
		return false
	}
	return s.deps.Probe.IsReady(spec)
}

// handleDrift deals with servers on the same port started from another configuration. It returns the
// drifted server when that server is kept and reused.
func (s *ProcessStrategy) handleDrift(spec launchspec.Spec, logger log.T) (registry.Entry, bool) {
	hash := spec.ConfigHash()
	entries, err := s.deps.Registry.FindByPort(spec.Port())
	if err != nil {
		logger.Warnf("Failed to look up servers on port %v, %v", spec.Port(), err)
		return registry.Entry{}, false
	}
	for _, entry := range entries {
		if entry.ConfigHash == hash {
			continue
		}
		alive := entry.AttachOnly() || s.deps.Registry.IsAlive(entry)
		switch {
		case spec.ForceRestartOnConfigChange():
			logger.Infof("Configuration of port %v changed from %v to %v, stopping pid %v",
				spec.Port(), entry.ConfigHash, hash, entry.PID)
			s.discard(entry)
		case !alive:
			s.discard(entry)
		case s.deps.Probe.IsReady(spec):
			logger.Warnf("Server pid %v on port %v runs configuration %v instead of %v, reusing it",
				entry.PID, spec.Port(), entry.ConfigHash, hash)
			return entry, true
		}
	}
	return registry.Entry{}, false
}

// discard kills the process of entry and deletes the entry. A pid that no longer identifies the recorded
// server (exited, or reused by an unrelated process) is left alone.
func (s *ProcessStrategy) discard(entry registry.Entry) {
	logger := s.deps.Context.Log()
	if s.deps.Registry.IsAlive(entry) {
		if !s.deps.Registry.TryKill(entry.PID) {
			logger.Warnf("Failed to kill pid %v", entry.PID)
		}
	} else if entry.PID > 0 {
		logger.Debugf("Pid %v no longer runs the server of %v, not killing it", entry.PID, entry.ConfigHash)
	}
	if err := s.deps.Registry.Delete(entry.ConfigHash); err != nil {
		logger.Warnf("Failed to delete registry entry %v, %v", entry.ConfigHash, err)
	}
}

// Stop kills the server when this strategy started it.
func (s *ProcessStrategy) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil
	}
	s.started = false
	if !s.owned || s.launcher == nil {
		return nil
	}
	s.owned = false
	if err := s.launcher.Stop(); err != nil {
		return fmt.Errorf("failed to stop server pid %v, %v", s.entry.PID, err)
	}
	return nil
}

// GetStatus reports the server of the last start, checking the process is still alive.
func (s *ProcessStrategy) GetStatus() ServerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ServerStatus{BaseURL: s.spec.BaseURL(), ConfigHash: s.hash}
	}
	return s.statusLocked()
}

func (s *ProcessStrategy) statusLocked() ServerStatus {
	running := s.entry.AttachOnly() || s.deps.Registry.IsAlive(s.entry)
	return ServerStatus{
		PID:        s.entry.PID,
		Running:    running,
		Healthy:    running && s.entry.Healthy,
		BaseURL:    s.entry.BaseURL,
		ConfigHash: s.hash,
		Reused:     s.reused,
	}
}

func (s *ProcessStrategy) ConfigHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hash
}
