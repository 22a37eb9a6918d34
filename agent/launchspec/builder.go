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
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultStartupTimeout = 120 * time.Second
	DefaultInitialDelay   = 500 * time.Millisecond
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultPackageManager = "npm"
)

// ciEnvironmentVariables mark a continuous integration run.
var ciEnvironmentVariables = []string{"CI", "GITHUB_ACTIONS", "TF_BUILD", "JENKINS_URL", "GITLAB_CI", "BUILDKITE", "TEAMCITY_VERSION"}

// lookupEnv is swapped in tests.
var lookupEnv = os.LookupEnv

var statPath = os.Stat

// Builder collects launch settings and validates them in Build. Setters return the builder so calls chain.
// A Builder is not safe for concurrent use.
type Builder struct {
	spec     Spec
	headless *bool
}

// NewBuilder starts a specification of the given kind with operational defaults.
func NewBuilder(kind Kind) *Builder {
	return &Builder{spec: Spec{
		kind:           kind,
		env:            map[string]envVar{},
		fixedPorts:     map[string]int{},
		startupTimeout: DefaultStartupTimeout,
		initialDelay:   DefaultInitialDelay,
		pollInterval:   DefaultPollInterval,
	}}
}

// WithBaseURL sets the scheme, host and port the server listens on.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.spec.baseURL = strings.TrimSpace(baseURL)
	return b
}

// WithEntryPath sets the project, manifest or executable to start.
func (b *Builder) WithEntryPath(path string) *Builder {
	b.spec.entryPath = path
	return b
}

// WithWorkingDirectory overrides the default working directory, the parent of the entry path.
func (b *Builder) WithWorkingDirectory(dir string) *Builder {
	b.spec.workingDir = dir
	return b
}

// WithFramework sets the target framework tag.
func (b *Builder) WithFramework(framework string) *Builder {
	b.spec.framework = framework
	return b
}

// WithConfiguration sets the build configuration tag.
func (b *Builder) WithConfiguration(configuration string) *Builder {
	b.spec.configuration = configuration
	return b
}

// WithArgs appends extra command line tokens.
func (b *Builder) WithArgs(args ...string) *Builder {
	b.spec.args = append(b.spec.args, args...)
	return b
}

// WithEnv sets an environment override. Keys are case-insensitive; the last spelling given wins.
func (b *Builder) WithEnv(key, value string) *Builder {
	b.spec.env[strings.ToUpper(key)] = envVar{key: key, value: value}
	return b
}

// WithEnvMap sets every override in env.
func (b *Builder) WithEnvMap(env map[string]string) *Builder {
	for key, value := range env {
		b.WithEnv(key, value)
	}
	return b
}

// WithHealthChecks replaces the default health check paths.
func (b *Builder) WithHealthChecks(paths ...string) *Builder {
	b.spec.healthPaths = append([]string{}, paths...)
	return b
}

// WithStartupTimeout bounds the whole start.
func (b *Builder) WithStartupTimeout(timeout time.Duration) *Builder {
	b.spec.startupTimeout = timeout
	return b
}

// WithInitialDelay sets the wait before the first health check.
func (b *Builder) WithInitialDelay(delay time.Duration) *Builder {
	b.spec.initialDelay = delay
	return b
}

// WithPollInterval sets the pause between health check cycles.
func (b *Builder) WithPollInterval(interval time.Duration) *Builder {
	b.spec.pollInterval = interval
	return b
}

// KillOrphansOnStart kills stray listeners on the server ports before launching.
func (b *Builder) KillOrphansOnStart(enabled bool) *Builder {
	b.spec.killOrphansOnStart = enabled
	return b
}

// ForceRestartOnConfigChange replaces a server on the same port started from another configuration.
func (b *Builder) ForceRestartOnConfigChange(enabled bool) *Builder {
	b.spec.forceRestart = enabled
	return b
}

// WithHeadless sets headless mode explicitly and disables detection from CI variables.
func (b *Builder) WithHeadless(headless bool) *Builder {
	b.headless = &headless
	return b
}

// WithFixedPort pins a named port, e.g. an orchestrator dashboard or a second listener.
func (b *Builder) WithFixedPort(name string, port int) *Builder {
	b.spec.fixedPorts[name] = port
	return b
}

// WithScript runs the named package manager script instead of "start".
func (b *Builder) WithScript(script string) *Builder {
	b.spec.script = script
	return b
}

// WithPackageManager replaces the default npm.
func (b *Builder) WithPackageManager(packageManager string) *Builder {
	b.spec.packageManager = packageManager
	return b
}

// WithSPAProxy turns the single page app development proxy on or off.
func (b *Builder) WithSPAProxy(enabled bool) *Builder {
	b.spec.spaProxy = &enabled
	return b
}

// WithForwardedHeaders sets the forwarded headers flag passed to orchestrated applications.
func (b *Builder) WithForwardedHeaders(enabled bool) *Builder {
	b.spec.forwardedHeaders = &enabled
	return b
}

// WithDashboardURL overrides the orchestrator dashboard address.
func (b *Builder) WithDashboardURL(dashboardURL string) *Builder {
	b.spec.dashboardURL = dashboardURL
	return b
}

// WithTelemetryEndpoint overrides the orchestrator telemetry endpoint.
func (b *Builder) WithTelemetryEndpoint(endpoint string) *Builder {
	b.spec.telemetryEndpoint = endpoint
	return b
}

// WithResourceName names the orchestrator resource whose URL is the server base URL.
func (b *Builder) WithResourceName(name string) *Builder {
	b.spec.resourceName = name
	return b
}

// StreamOutput forwards server output lines to the logger.
func (b *Builder) StreamOutput(enabled bool) *Builder {
	b.spec.streamOutput = enabled
	return b
}

// WithOutputFile writes server output to path instead of an in-memory buffer.
func (b *Builder) WithOutputFile(path string) *Builder {
	b.spec.outputFile = path
	return b
}

// LocateEntryPath defers entry path resolution to the project locator when no entry path is given.
func (b *Builder) LocateEntryPath(enabled bool) *Builder {
	b.spec.locateEntryPath = enabled
	return b
}

// Build validates the collected settings and returns the immutable specification.
// Every failure is a *ValidationError.
func (b *Builder) Build() (Spec, error) {
	spec := b.spec.clone()

	if _, err := ParseKind(string(spec.kind)); err != nil {
		return Spec{}, err
	}

	if err := resolveBaseURL(&spec); err != nil {
		return Spec{}, err
	}

	if spec.entryPath == "" && spec.kind.requiresEntryPath() && !spec.locateEntryPath {
		return Spec{}, &ValidationError{Field: "entryPath", Reason: fmt.Sprintf("is required for %v servers", spec.kind)}
	}
	if spec.workingDir == "" {
		spec.workingDir = defaultWorkingDir(spec.entryPath)
	}

	if err := validateTimings(spec); err != nil {
		return Spec{}, err
	}

	if len(spec.healthPaths) == 0 {
		spec.healthPaths = defaultHealthPaths(spec.kind)
	}
	for _, path := range spec.healthPaths {
		if !strings.HasPrefix(path, "/") {
			return Spec{}, &ValidationError{Field: "healthChecks", Reason: fmt.Sprintf("path %q must start with /", path)}
		}
	}

	for name, port := range spec.fixedPorts {
		if port < 1 || port > 65535 {
			return Spec{}, &ValidationError{Field: "fixedPorts", Reason: fmt.Sprintf("port %v for %q is out of range", port, name)}
		}
	}

	if spec.kind == Node && spec.packageManager == "" {
		spec.packageManager = DefaultPackageManager
	}

	if b.headless != nil {
		spec.headless = *b.headless
	} else {
		spec.headless = detectCI()
	}
	return spec, nil
}

func resolveBaseURL(spec *Spec) error {
	if spec.baseURL == "" {
		if spec.kind.requiresBaseURL() {
			return &ValidationError{Field: "baseUrl", Reason: fmt.Sprintf("is required for %v servers", spec.kind)}
		}
		return nil
	}

	parsed, err := url.Parse(spec.baseURL)
	if err != nil {
		return &ValidationError{Field: "baseUrl", Reason: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &ValidationError{Field: "baseUrl", Reason: fmt.Sprintf("scheme of %q must be http or https", spec.baseURL)}
	}
	if parsed.Hostname() == "" {
		return &ValidationError{Field: "baseUrl", Reason: fmt.Sprintf("%q has no host", spec.baseURL)}
	}
	port, err := portOf(parsed)
	if err != nil || port < 1 || port > 65535 {
		return &ValidationError{Field: "baseUrl", Reason: fmt.Sprintf("%q has an invalid port", spec.baseURL)}
	}

	spec.baseURL = strings.TrimRight(spec.baseURL, "/")
	spec.host = parsed.Hostname()
	spec.port = port
	return nil
}

func validateTimings(spec Spec) error {
	if spec.startupTimeout <= 0 {
		return &ValidationError{Field: "startupTimeout", Reason: "must be positive"}
	}
	if spec.pollInterval <= 0 {
		return &ValidationError{Field: "pollInterval", Reason: "must be positive"}
	}
	if spec.initialDelay < 0 {
		return &ValidationError{Field: "initialDelay", Reason: "must not be negative"}
	}
	return nil
}

func defaultHealthPaths(kind Kind) []string {
	if kind == DistributedOrchestrator {
		return []string{"/", "/health"}
	}
	return []string{"/"}
}

// defaultWorkingDir is the entry path itself when it names an existing directory, its parent otherwise.
func defaultWorkingDir(entryPath string) string {
	if entryPath == "" {
		return ""
	}
	if info, err := statPath(entryPath); err == nil && info.IsDir() {
		return entryPath
	}
	return filepath.Dir(entryPath)
}

func detectCI() bool {
	for _, name := range ciEnvironmentVariables {
		if value, ok := lookupEnv(name); ok {
			switch strings.ToLower(strings.TrimSpace(value)) {
			case "", "0", "false", "no":
				continue
			}
			return true
		}
	}
	return false
}
