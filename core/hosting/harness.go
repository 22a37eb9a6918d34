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
	"os"
	"sync"

	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
)

// InProcessHost runs the application under test inside the test process.
type InProcessHost interface {
	// Start serves the application and returns its base URL; an empty URL means the one of spec.
	Start(spec launchspec.Spec) (string, error)
	Stop() error
}

// HarnessStrategy hosts the application in process through an InProcessHost.
type HarnessStrategy struct {
	deps Dependencies
	spec launchspec.Spec

	mu     sync.Mutex
	status ServerStatus
	hash   string
}

func newHarnessStrategy(spec launchspec.Spec, deps Dependencies) (Strategy, error) {
	if deps.Host == nil {
		return nil, errors.New("in-process hosting needs a host")
	}
	return &HarnessStrategy{deps: deps, spec: spec}, nil
}

func (s *HarnessStrategy) Start(logger log.T) (ServerStatus, error) {
	clock := s.deps.Context.Clock()
	begin := clock.Now()
	hash := s.spec.ConfigHash()

	if s.deps.Builders != nil {
		if cmd, err := s.deps.Builders.Build(s.spec); err == nil {
			logger.Debugf("Hosting in process, equivalent command: %v", cmd)
		}
	}

	baseURL, err := s.deps.Host.Start(s.spec)
	if err != nil {
		return ServerStatus{}, &StartError{ConfigHash: hash, Port: s.spec.Port(), Elapsed: times.Since(clock, begin), Err: err}
	}
	served := s.spec
	if baseURL == "" {
		baseURL = s.spec.BaseURL()
	} else if baseURL != s.spec.BaseURL() {
		if served, err = s.spec.WithBaseURL(baseURL); err != nil {
			s.stopHost(logger)
			return ServerStatus{}, &StartError{ConfigHash: hash, Port: s.spec.Port(), Elapsed: times.Since(clock, begin), Err: err}
		}
	}
	switch {
	case baseURL == "":
		logger.Debugf("In-process host reported no base URL, skipping readiness checks")
	case s.deps.Probe != nil && len(served.HealthPaths()) > 0:
		if err = s.deps.Probe.WaitUntilReady(served, nil); err != nil {
			s.stopHost(logger)
			return ServerStatus{}, &StartError{ConfigHash: hash, Port: served.Port(), Elapsed: times.Since(clock, begin), Err: err}
		}
	}
	logger.Infof("In-process host serving on %v", baseURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hash == "" {
		s.hash = hash
	}
	s.status = ServerStatus{PID: os.Getpid(), Running: true, Healthy: true, BaseURL: baseURL, ConfigHash: s.hash}
	return s.status, nil
}

func (s *HarnessStrategy) stopHost(logger log.T) {
	if err := s.deps.Host.Stop(); err != nil {
		logger.Warnf("Failed to stop in-process host, %v", err)
	}
}

func (s *HarnessStrategy) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.Running {
		return nil
	}
	s.status = ServerStatus{BaseURL: s.status.BaseURL, ConfigHash: s.hash}
	return s.deps.Host.Stop()
}

func (s *HarnessStrategy) GetStatus() ServerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *HarnessStrategy) ConfigHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hash
}
