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

package launchspec

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// envVar keeps the spelling of a key as it was last given.
type envVar struct {
	key   string
	value string
}

// Spec is an immutable launch specification. Obtain one from Builder.Build; a zero Spec is not valid.
// Accessors return copies so callers can never modify a built Spec.
type Spec struct {
	kind          Kind
	baseURL       string
	host          string
	port          int
	entryPath     string
	workingDir    string
	framework     string
	configuration string
	args          []string
	// keyed by upper case variable name
	env            map[string]envVar
	healthPaths    []string
	startupTimeout time.Duration
	initialDelay   time.Duration
	pollInterval   time.Duration

	killOrphansOnStart bool
	forceRestart       bool
	headless           bool
	fixedPorts         map[string]int

	script            string
	packageManager    string
	spaProxy          *bool
	forwardedHeaders  *bool
	dashboardURL      string
	telemetryEndpoint string
	resourceName      string
	streamOutput      bool
	outputFile        string
	locateEntryPath   bool
}

// Kind returns the runtime kind.
func (s Spec) Kind() Kind { return s.kind }

// BaseURL returns the base URL without a trailing slash, or "" for an in-process harness without one.
func (s Spec) BaseURL() string { return s.baseURL }

// Host returns the host name of the base URL.
func (s Spec) Host() string { return s.host }

// Port returns the TCP port of the base URL, defaulting by scheme, or 0 when there is no base URL.
func (s Spec) Port() int { return s.port }

// EntryPath returns the project, manifest or executable the server is started from.
func (s Spec) EntryPath() string { return s.entryPath }

// WorkingDir returns the directory the server process runs in.
func (s Spec) WorkingDir() string { return s.workingDir }

// Framework returns the target framework tag passed to standard web builds.
func (s Spec) Framework() string { return s.framework }

// Configuration returns the build configuration tag, e.g. "Release".
func (s Spec) Configuration() string { return s.configuration }

// Args returns the extra command line tokens in order.
func (s Spec) Args() []string { return append([]string{}, s.args...) }

// Env returns the environment overrides keyed with their original spelling.
func (s Spec) Env() map[string]string {
	env := make(map[string]string, len(s.env))
	for _, v := range s.env {
		env[v.key] = v.value
	}
	return env
}

// EnvValue looks an override up case-insensitively.
func (s Spec) EnvValue(key string) (string, bool) {
	v, ok := s.env[strings.ToUpper(key)]
	return v.value, ok
}

// HealthPaths returns the health check paths, each starting with "/".
func (s Spec) HealthPaths() []string { return append([]string{}, s.healthPaths...) }

// HealthURLs returns the base URL joined with every health path.
func (s Spec) HealthURLs() []string {
	urls := make([]string, 0, len(s.healthPaths))
	for _, path := range s.healthPaths {
		urls = append(urls, s.baseURL+path)
	}
	return urls
}

// StartupTimeout bounds the whole start, from spawn to the first successful health check.
func (s Spec) StartupTimeout() time.Duration { return s.startupTimeout }

// InitialDelay is waited after spawn before the first health check.
func (s Spec) InitialDelay() time.Duration { return s.initialDelay }

// PollInterval is the pause between health check cycles.
func (s Spec) PollInterval() time.Duration { return s.pollInterval }

// KillOrphansOnStart reports whether stray listeners on the server ports are killed before launching.
func (s Spec) KillOrphansOnStart() bool { return s.killOrphansOnStart }

// ForceRestartOnConfigChange reports whether a server started from another configuration is replaced.
func (s Spec) ForceRestartOnConfigChange() bool { return s.forceRestart }

// Headless reports whether the server must not open interactive windows such as a browser.
func (s Spec) Headless() bool { return s.headless }

// FixedPorts returns the named ports the server is pinned to in addition to its base URL port.
func (s Spec) FixedPorts() map[string]int {
	ports := make(map[string]int, len(s.fixedPorts))
	for name, port := range s.fixedPorts {
		ports[name] = port
	}
	return ports
}

// AllPorts returns the base URL port followed by the fixed ports, sorted and without duplicates.
func (s Spec) AllPorts() []int {
	seen := map[int]bool{}
	var ports []int
	if s.port > 0 {
		seen[s.port] = true
	}
	for _, port := range s.fixedPorts {
		if !seen[port] {
			seen[port] = true
			ports = append(ports, port)
		}
	}
	sort.Ints(ports)
	if s.port > 0 {
		ports = append([]int{s.port}, ports...)
	}
	return ports
}

// Script returns the package manager script to run instead of "start".
func (s Spec) Script() string { return s.script }

// PackageManager returns the node package manager executable.
func (s Spec) PackageManager() string { return s.packageManager }

// SPAProxy returns the single page app proxy toggle and whether it was set at all.
func (s Spec) SPAProxy() (enabled bool, set bool) { return boolValue(s.spaProxy) }

// ForwardedHeaders returns the forwarded headers flag and whether it was set at all.
func (s Spec) ForwardedHeaders() (enabled bool, set bool) { return boolValue(s.forwardedHeaders) }

// DashboardURL returns the orchestrator dashboard address override.
func (s Spec) DashboardURL() string { return s.dashboardURL }

// TelemetryEndpoint returns the orchestrator telemetry endpoint override.
func (s Spec) TelemetryEndpoint() string { return s.telemetryEndpoint }

// ResourceName names the orchestrator sub-resource whose URL is the server base URL.
func (s Spec) ResourceName() string { return s.resourceName }

// StreamOutput reports whether server output lines are forwarded to the logger.
func (s Spec) StreamOutput() bool { return s.streamOutput }

// OutputFile returns the file server output is written to, or "" to capture it in memory.
func (s Spec) OutputFile() string { return s.outputFile }

// LocateEntryPath reports whether the entry path is resolved by the project locator at start time.
func (s Spec) LocateEntryPath() bool { return s.locateEntryPath }

// NeedsEntryPath reports whether the entry path still has to be located before the server can start.
func (s Spec) NeedsEntryPath() bool {
	return s.entryPath == "" && s.locateEntryPath
}

// WithEntryPath returns a copy of s with the entry path resolved. The working directory follows the new
// entry path unless it was set explicitly.
func (s Spec) WithEntryPath(path string) Spec {
	resolved := s.clone()
	explicitWorkingDir := s.workingDir != "" && s.workingDir != defaultWorkingDir(s.entryPath)
	resolved.entryPath = path
	if !explicitWorkingDir {
		resolved.workingDir = defaultWorkingDir(path)
	}
	return resolved
}

// WithBaseURL returns a copy of s serving on baseURL, validated like Builder.WithBaseURL. The host and
// port follow the new URL.
func (s Spec) WithBaseURL(baseURL string) (Spec, error) {
	copied := s.clone()
	copied.baseURL = strings.TrimSpace(baseURL)
	copied.host, copied.port = "", 0
	if err := resolveBaseURL(&copied); err != nil {
		return Spec{}, err
	}
	return copied, nil
}

// WithOutputFile returns a copy of s writing server output to path.
func (s Spec) WithOutputFile(path string) Spec {
	copied := s.clone()
	copied.outputFile = path
	return copied
}

// IsZero reports whether s was not produced by a Builder.
func (s Spec) IsZero() bool {
	return s.kind == ""
}

func (s Spec) clone() Spec {
	copied := s
	copied.args = s.Args()
	copied.healthPaths = s.HealthPaths()
	copied.fixedPorts = s.FixedPorts()
	copied.env = make(map[string]envVar, len(s.env))
	for k, v := range s.env {
		copied.env[k] = v
	}
	return copied
}

func boolValue(b *bool) (bool, bool) {
	if b == nil {
		return false, false
	}
	return *b, true
}

func portOf(u *url.URL) (int, error) {
	if p := u.Port(); p != "" {
		return strconv.Atoi(p)
	}
	if u.Scheme == "https" {
		return 443, nil
	}
	return 80, nil
}
