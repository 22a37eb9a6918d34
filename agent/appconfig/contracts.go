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

// Package appconfig manages the configuration of serverhost.
package appconfig

// RegistryCfg represents the location of the process registry
type RegistryCfg struct {
	Directory string
}

// LockCfg represents configuration of the per port process mutex
type LockCfg struct {
	Directory string
	// Time spent waiting on the lock before probing the port again
	WaitSliceMillis int
}

// LaunchCfg holds the operational defaults applied when a launch document leaves them unset
type LaunchCfg struct {
	StartupTimeoutSeconds int
	InitialDelayMillis    int
	PollIntervalMillis    int
	OutputBufferLines     int
}

// ProbeCfg represents configuration for the readiness probe HTTP client
type ProbeCfg struct {
	RequestTimeoutMillis int64
}

// LocatorCfg represents configuration for the project locator chain
type LocatorCfg struct {
	EnvironmentVariable string
	ConfigFileName      string
	MaxScanDepth        int
}

// OrchestratorCfg represents the external orchestrator command
type OrchestratorCfg struct {
	Command      string
	Arguments    []string
	ManifestFile string
}

// MetricsCfg represents configuration for the prometheus collector
type MetricsCfg struct {
	Namespace string
}

// ServerHostConfig stores serverhost configuration values.
type ServerHostConfig struct {
	Registry     RegistryCfg
	Lock         LockCfg
	Launch       LaunchCfg
	Probe        ProbeCfg
	Locator      LocatorCfg
	Orchestrator OrchestratorCfg
	Metrics      MetricsCfg
}
