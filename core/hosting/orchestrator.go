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
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Jeffail/gabs"
	"github.com/cenkalti/backoff/v4"
	"github.com/serverhost/serverhost/agent/backoffconfig"
	agentctx "github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/fileutil"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/agent/times"
	"github.com/serverhost/serverhost/core/executor"
)

const (
	// DashboardURLVariable carries the dashboard URL to the orchestrator.
	DashboardURLVariable = "ASPNETCORE_URLS"
	// TelemetryEndpointVariable carries the telemetry collector endpoint to the orchestrator.
	TelemetryEndpointVariable = "DOTNET_DASHBOARD_OTLP_ENDPOINT_URL"
	// ForwardedHeadersVariable enables forwarded header processing in the orchestrated resources.
	ForwardedHeadersVariable = "ASPNETCORE_FORWARDEDHEADERS_ENABLED"

	runningState = "Running"
)

var errResourceNotRunning = errors.New("orchestrated resource is not running yet")

// OrchestratorResult is what an orchestrator reports about the resource serving the tests.
type OrchestratorResult struct {
	PID     int
	BaseURL string
	Healthy bool
}

// Orchestrator starts a whole distributed application from a specification.
type Orchestrator interface {
	Start(spec launchspec.Spec) (OrchestratorResult, error)
	Stop(spec launchspec.Spec) error
}

// OrchestratorStrategy hands the specification to an Orchestrator and only reads back the base URL and
// health of the resource it names.
type OrchestratorStrategy struct {
	deps Dependencies
	spec launchspec.Spec

	mu     sync.Mutex
	status ServerStatus
	hash   string
}

func newOrchestratorStrategy(spec launchspec.Spec, deps Dependencies) (Strategy, error) {
	if deps.Orchestrator == nil {
		return nil, errors.New("distributed hosting needs an orchestrator")
	}
	return &OrchestratorStrategy{deps: deps, spec: spec}, nil
}

func (s *OrchestratorStrategy) Start(logger log.T) (ServerStatus, error) {
	clock := s.deps.Context.Clock()
	begin := clock.Now()
	hash := s.spec.ConfigHash()

	logger.Infof("Starting orchestrated application %v", s.spec.EntryPath())
	result, err := s.deps.Orchestrator.Start(s.spec)
	if err != nil {
		return ServerStatus{}, &StartError{ConfigHash: hash, Port: s.spec.Port(), Elapsed: times.Since(clock, begin), Err: err}
	}
	baseURL := result.BaseURL
	if baseURL == "" {
		baseURL = s.spec.BaseURL()
	}
	logger.Infof("Orchestrated resource is serving on %v", baseURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hash == "" {
		s.hash = hash
	}
	s.status = ServerStatus{PID: result.PID, Running: true, Healthy: result.Healthy, BaseURL: baseURL, ConfigHash: s.hash}
	return s.status, nil
}

func (s *OrchestratorStrategy) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.Running {
		return nil
	}
	s.status = ServerStatus{BaseURL: s.status.BaseURL, ConfigHash: s.hash}
	return s.deps.Orchestrator.Stop(s.spec)
}

func (s *OrchestratorStrategy) GetStatus() ServerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *OrchestratorStrategy) ConfigHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hash
}

// CommandOrchestrator runs the configured orchestrator command for the entry path and waits for the
// manifest it writes to report the resource as running.
type CommandOrchestrator struct {
	log          log.T
	exec         executor.IExecutor
	command      string
	arguments    []string
	manifestFile string

	mu        sync.Mutex
	processes map[string]*executor.Process
}

// NewCommandOrchestrator uses the orchestrator command of the configuration.
func NewCommandOrchestrator(ctx agentctx.T, exec executor.IExecutor) *CommandOrchestrator {
	config := ctx.AppConfig().Orchestrator
	return &CommandOrchestrator{
		log:          ctx.With("[Orchestrator]").Log(),
		exec:         exec,
		command:      config.Command,
		arguments:    config.Arguments,
		manifestFile: config.ManifestFile,
		processes:    map[string]*executor.Process{},
	}
}

// Start runs the orchestrator for spec, stopping one this orchestrator started earlier for the same
// configuration.
func (o *CommandOrchestrator) Start(spec launchspec.Spec) (OrchestratorResult, error) {
	if o.command == "" {
		return OrchestratorResult{}, errors.New("no orchestrator command configured")
	}
	if err := o.Stop(spec); err != nil {
		return OrchestratorResult{}, fmt.Errorf("failed to stop previous orchestrator, %v", err)
	}
	manifest := o.manifestPath(spec)
	if err := fileutil.DeleteFile(manifest); err != nil {
		return OrchestratorResult{}, fmt.Errorf("failed to remove stale manifest %v, %v", manifest, err)
	}

	args := append([]string{}, o.arguments...)
	if spec.EntryPath() != "" {
		args = append(args, spec.EntryPath())
	}
	args = append(args, spec.Args()...)
	process, err := o.exec.Start(&executor.ProcessConfig{
		Path: o.command,
		Args: args,
		Dir:  spec.WorkingDir(),
		Env:  OrchestratorEnvironment(spec),
	})
	if err != nil {
		return OrchestratorResult{}, fmt.Errorf("failed to start orchestrator %v, %v", o.command, err)
	}
	o.log.Infof("Started orchestrator %v with pid %v", o.command, process.Pid)

	baseURL, err := o.waitForResource(spec, manifest, process)
	if err != nil {
		if killErr := o.exec.Kill(process.Pid); killErr != nil {
			o.log.Warnf("Failed to kill orchestrator pid %v, %v", process.Pid, killErr)
		}
		return OrchestratorResult{}, err
	}

	o.mu.Lock()
	o.processes[spec.ConfigHash()] = process
	o.mu.Unlock()
	return OrchestratorResult{PID: process.Pid, BaseURL: baseURL, Healthy: true}, nil
}

// Stop kills the orchestrator process started for spec, if it is still running.
func (o *CommandOrchestrator) Stop(spec launchspec.Spec) error {
	o.mu.Lock()
	process, ok := o.processes[spec.ConfigHash()]
	delete(o.processes, spec.ConfigHash())
	o.mu.Unlock()
	if !ok || process.Exited() {
		return nil
	}
	return o.exec.Kill(process.Pid)
}

func (o *CommandOrchestrator) manifestPath(spec launchspec.Spec) string {
	if filepath.IsAbs(o.manifestFile) {
		return o.manifestFile
	}
	return filepath.Join(spec.WorkingDir(), o.manifestFile)
}

func (o *CommandOrchestrator) waitForResource(spec launchspec.Spec, manifest string, process *executor.Process) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), spec.StartupTimeout())
	defer cancel()
	policy, err := backoffconfig.GetPollingBackoff(ctx, spec.PollInterval())
	if err != nil {
		return "", err
	}

	var baseURL string
	operation := func() error {
		if process.Exited() {
			return backoff.Permanent(fmt.Errorf("orchestrator exited before the resource was running, %v", process.ExitErr()))
		}
		content, err := os.ReadFile(manifest)
		if err != nil {
			return err
		}
		url, running, err := ParseManifest(content, spec.ResourceName())
		if err != nil {
			return err
		}
		if !running || url == "" {
			return errResourceNotRunning
		}
		baseURL = url
		return nil
	}
	if err = backoff.Retry(operation, policy); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("orchestrated resource not running after %v, %v", spec.StartupTimeout(), err)
		}
		return "", err
	}
	return baseURL, nil
}

// OrchestratorEnvironment layers the orchestrator settings of spec over its environment overrides.
func OrchestratorEnvironment(spec launchspec.Spec) map[string]string {
	env := spec.Env()
	if url := spec.DashboardURL(); url != "" {
		env[DashboardURLVariable] = url
	}
	if endpoint := spec.TelemetryEndpoint(); endpoint != "" {
		env[TelemetryEndpointVariable] = endpoint
	}
	if enabled, set := spec.ForwardedHeaders(); set {
		env[ForwardedHeadersVariable] = fmt.Sprintf("%t", enabled)
	}
	return env
}

// ParseManifest reads the url and running state of resource from an orchestrator manifest. Without a
// resource name the first resource, by name, that publishes a url is used.
func ParseManifest(content []byte, resource string) (url string, running bool, err error) {
	parsed, err := gabs.ParseJSON(content)
	if err != nil {
		return "", false, fmt.Errorf("failed to parse orchestrator manifest, %v", err)
	}
	resources, err := parsed.Search("resources").ChildrenMap()
	if err != nil {
		return "", false, fmt.Errorf("orchestrator manifest has no resources, %v", err)
	}

	var selected *gabs.Container
	if resource != "" {
		found, ok := resources[resource]
		if !ok {
			return "", false, fmt.Errorf("orchestrator manifest has no resource %v", resource)
		}
		selected = found
	} else {
		names := make([]string, 0, len(resources))
		for name := range resources {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, ok := resources[name].Search("url").Data().(string); ok {
				selected = resources[name]
				break
			}
		}
		if selected == nil {
			return "", false, errors.New("orchestrator manifest has no resource with a url")
		}
	}

	url, _ = selected.Search("url").Data().(string)
	state, _ := selected.Search("state").Data().(string)
	return url, state == runningState, nil
}
