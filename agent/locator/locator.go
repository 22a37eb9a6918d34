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

// Package locator finds the project a server is started from when the launch specification leaves the
// entry path to be discovered.
//
// Strategies are tried in order: an environment variable, a serverhost.ini file, a search from the root of
// the enclosing git repository, and a walk up the parent directories of the working directory.
package locator

import (
	"fmt"
	"os"
	"strings"

	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/agent/log"
)

var getwd = os.Getwd

// Strategy is one way of locating a project.
type Strategy interface {
	Name() string
	// Locate returns the entry path for spec searching from start. found is false when the strategy has
	// nothing to say.
	Locate(spec launchspec.Spec, start string) (path string, found bool, err error)
}

// Locator runs its strategies in order and uses the first path found.
type Locator struct {
	log        log.T
	strategies []Strategy
}

// NewLocator creates a locator trying strategies in the given order.
func NewLocator(log log.T, strategies ...Strategy) *Locator {
	return &Locator{log: log, strategies: strategies}
}

// NewDefaultLocator builds the standard chain from the locator configuration.
func NewDefaultLocator(ctx context.T) *Locator {
	config := ctx.AppConfig().Locator
	return NewLocator(ctx.With("[Locator]").Log(),
		NewEnvironmentStrategy(config.EnvironmentVariable),
		NewConfigFileStrategy(config.ConfigFileName),
		NewRepositoryStrategy(config.MaxScanDepth),
		NewParentWalkStrategy(),
	)
}

// Resolve returns spec with its entry path filled in.
func (l *Locator) Resolve(spec launchspec.Spec) (launchspec.Spec, error) {
	if !spec.NeedsEntryPath() {
		return spec, nil
	}
	start := spec.WorkingDir()
	if start == "" {
		cwd, err := getwd()
		if err != nil {
			return spec, fmt.Errorf("failed to get working directory, %v", err)
		}
		start = cwd
	}

	tried := make([]string, 0, len(l.strategies))
	for _, strategy := range l.strategies {
		path, found, err := strategy.Locate(spec, start)
		if err != nil {
			return spec, fmt.Errorf("%v project locator failed, %w", strategy.Name(), err)
		}
		if found {
			l.log.Infof("Located %v project %v using %v", spec.Kind(), path, strategy.Name())
			return spec.WithEntryPath(path), nil
		}
		tried = append(tried, strategy.Name())
	}
	return spec, &launchspec.ValidationError{
		Field:  "entryPath",
		Reason: fmt.Sprintf("could not be located from %v (tried %v)", start, strings.Join(tried, ", ")),
	}
}

// EnvironmentStrategy reads the path from an environment variable. A variable naming a missing path is an
// error rather than a miss.
type EnvironmentStrategy struct {
	variable string
}

// NewEnvironmentStrategy reads the entry path from variable.
func NewEnvironmentStrategy(variable string) *EnvironmentStrategy {
	return &EnvironmentStrategy{variable: variable}
}

func (s *EnvironmentStrategy) Name() string { return "environment" }

func (s *EnvironmentStrategy) Locate(spec launchspec.Spec, start string) (string, bool, error) {
	if s.variable == "" {
		return "", false, nil
	}
	value := strings.TrimSpace(os.Getenv(s.variable))
	if value == "" {
		return "", false, nil
	}
	path := absolute(start, value)
	if _, err := os.Stat(path); err != nil {
		return "", false, fmt.Errorf("%v points to %v, %v", s.variable, path, err)
	}
	return path, true, nil
}
