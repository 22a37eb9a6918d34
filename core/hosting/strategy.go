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

// Package hosting exposes one start/stop/status contract over every kind of test server.
package hosting

import (
	"errors"
	"fmt"

	agentctx "github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/locator"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/core/command"
	"github.com/serverhost/serverhost/core/coordinator"
	"github.com/serverhost/serverhost/core/executor"
	"github.com/serverhost/serverhost/core/launcher"
	"github.com/serverhost/serverhost/core/metrics"
	"github.com/serverhost/serverhost/core/portfinder"
	"github.com/serverhost/serverhost/core/readiness"
	"github.com/serverhost/serverhost/core/registry"
)

// ErrNoStrategy is returned for a specification whose kind has no strategy.
var ErrNoStrategy = errors.New("no hosting strategy")

// Strategy starts, stops and reports on one server.
type Strategy interface {
	// Start starts the server or reuses a healthy one with the same configuration. Progress is logged
	// to logger.
	Start(logger log.T) (ServerStatus, error)
	// Stop stops a server this strategy started; reused servers are left running.
	Stop() error
	GetStatus() ServerStatus
	// ConfigHash is the configuration hash, empty until the first successful start.
	ConfigHash() string
}

// StartCoordinator runs a start sequence exclusively for the port of a specification.
type StartCoordinator interface {
	Run(spec launchspec.Spec, start coordinator.StartFunc) (registry.Entry, bool, error)
}

// Dependencies are the collaborators shared by strategies.
type Dependencies struct {
	Context      agentctx.T
	Registry     registry.Registry
	Coordinator  StartCoordinator
	Probe        readiness.Probe
	Builders     command.Table
	Executor     executor.IExecutor
	Locator      launcher.EntryPathResolver
	Metrics      *metrics.Collector
	Orchestrator Orchestrator
	Host         InProcessHost
}

// NewDefaultDependencies wires the collaborators used outside of tests. The in-process host is left unset.
func NewDefaultDependencies(ctx agentctx.T) Dependencies {
	logger := ctx.Log()
	exec := executor.NewProcessExecutor(logger)
	collector := metrics.NewCollector(ctx.AppConfig().Metrics.Namespace)
	reg := registry.NewDefaultProcessRegistry(ctx, exec, portfinder.NewNetstatFinder(logger), collector)
	probe := readiness.NewHTTPProbe(ctx, collector)
	return Dependencies{
		Context:      ctx,
		Registry:     reg,
		Coordinator:  coordinator.NewDefaultCoordinator(ctx, probe, reg),
		Probe:        probe,
		Builders:     command.DefaultTable(),
		Executor:     exec,
		Locator:      locator.NewDefaultLocator(ctx),
		Metrics:      collector,
		Orchestrator: NewCommandOrchestrator(ctx, exec),
	}
}

type newStrategyFunc func(spec launchspec.Spec, deps Dependencies) (Strategy, error)

var strategies = map[launchspec.Kind]newStrategyFunc{
	launchspec.StandardWeb:             newProcessStrategy,
	launchspec.Node:                    newProcessStrategy,
	launchspec.External:                newProcessStrategy,
	launchspec.DistributedOrchestrator: newOrchestratorStrategy,
	launchspec.InProcessHarness:        newHarnessStrategy,
}

// NewStrategy returns the strategy for the kind of spec.
func NewStrategy(spec launchspec.Spec, deps Dependencies) (Strategy, error) {
	if spec.IsZero() {
		return nil, fmt.Errorf("%w: empty launch specification", ErrNoStrategy)
	}
	newStrategy, ok := strategies[spec.Kind()]
	if !ok {
		return nil, fmt.Errorf("%w for kind %v", ErrNoStrategy, spec.Kind())
	}
	if deps.Context == nil {
		return nil, errors.New("hosting dependencies need a context")
	}
	return newStrategy(spec, deps)
}
