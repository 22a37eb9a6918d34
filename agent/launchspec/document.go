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
	"os"
	"path/filepath"
	"time"

	"github.com/google/shlex"
	"gopkg.in/yaml.v2"
)

// Document is the YAML form of a launch specification.
type Document struct {
	Kind                       string            `yaml:"kind"`
	BaseURL                    string            `yaml:"baseUrl"`
	EntryPath                  string            `yaml:"entryPath"`
	WorkingDirectory           string            `yaml:"workingDirectory"`
	Framework                  string            `yaml:"framework"`
	Configuration              string            `yaml:"configuration"`
	Args                       []string          `yaml:"args"`
	ArgString                  string            `yaml:"argString"`
	Env                        map[string]string `yaml:"env"`
	HealthChecks               []string          `yaml:"healthChecks"`
	StartupTimeout             string            `yaml:"startupTimeout"`
	InitialDelay               string            `yaml:"initialDelay"`
	PollInterval               string            `yaml:"pollInterval"`
	KillOrphansOnStart         bool              `yaml:"killOrphansOnStart"`
	ForceRestartOnConfigChange bool              `yaml:"forceRestartOnConfigChange"`
	Headless                   *bool             `yaml:"headless"`
	FixedPorts                 map[string]int    `yaml:"fixedPorts"`
	Script                     string            `yaml:"script"`
	PackageManager             string            `yaml:"packageManager"`
	SPAProxy                   *bool             `yaml:"spaProxy"`
	ForwardedHeaders           *bool             `yaml:"forwardedHeaders"`
	DashboardURL               string            `yaml:"dashboardUrl"`
	TelemetryEndpoint          string            `yaml:"telemetryEndpoint"`
	ResourceName               string            `yaml:"resourceName"`
	StreamOutput               bool              `yaml:"streamOutput"`
	OutputFile                 string            `yaml:"outputFile"`
	LocateEntryPath            bool              `yaml:"locateEntryPath"`
}

// Defaults replace the package defaults for timings a launch document leaves unset. Zero values are ignored.
type Defaults struct {
	StartupTimeout time.Duration
	InitialDelay   time.Duration
	PollInterval   time.Duration
}

// LoadDocument reads a YAML launch document. Relative paths resolve against the document's directory.
func LoadDocument(path string) (*Builder, error) {
	return LoadDocumentWithDefaults(path, Defaults{})
}

// LoadDocumentWithDefaults is LoadDocument with configured timing defaults.
func LoadDocumentWithDefaults(path string, defaults Defaults) (*Builder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch document %v, %v", path, err)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return parseDocument(content, filepath.Dir(absolute), defaults)
}

// ParseDocument decodes a YAML launch document whose relative paths resolve against baseDir.
func ParseDocument(content []byte, baseDir string) (*Builder, error) {
	return parseDocument(content, baseDir, Defaults{})
}

func parseDocument(content []byte, baseDir string, defaults Defaults) (*Builder, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(content, &doc); err != nil {
		return nil, &ValidationError{Field: "document", Reason: err.Error()}
	}
	return doc.builder(baseDir, defaults)
}

// Builder converts the document into a Builder. Build still has to be called to validate it.
func (d Document) Builder(baseDir string) (*Builder, error) {
	return d.builder(baseDir, Defaults{})
}

func (d Document) builder(baseDir string, defaults Defaults) (*Builder, error) {
	kind, err := ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}

	b := NewBuilder(kind)
	if defaults.StartupTimeout > 0 {
		b.WithStartupTimeout(defaults.StartupTimeout)
	}
	if defaults.InitialDelay > 0 {
		b.WithInitialDelay(defaults.InitialDelay)
	}
	if defaults.PollInterval > 0 {
		b.WithPollInterval(defaults.PollInterval)
	}
	b.
		WithBaseURL(d.BaseURL).
		WithEntryPath(resolveEntryPath(kind, baseDir, d.EntryPath)).
		WithWorkingDirectory(resolvePath(baseDir, d.WorkingDirectory)).
		WithFramework(d.Framework).
		WithConfiguration(d.Configuration).
		WithArgs(d.Args...).
		WithEnvMap(d.Env).
		KillOrphansOnStart(d.KillOrphansOnStart).
		ForceRestartOnConfigChange(d.ForceRestartOnConfigChange).
		WithScript(d.Script).
		WithPackageManager(d.PackageManager).
		WithDashboardURL(d.DashboardURL).
		WithTelemetryEndpoint(d.TelemetryEndpoint).
		WithResourceName(d.ResourceName).
		StreamOutput(d.StreamOutput).
		WithOutputFile(resolvePath(baseDir, d.OutputFile)).
		LocateEntryPath(d.LocateEntryPath)

	if d.ArgString != "" {
		tokens, err := shlex.Split(d.ArgString)
		if err != nil {
			return nil, &ValidationError{Field: "argString", Reason: err.Error()}
		}
		b.WithArgs(tokens...)
	}
	if len(d.HealthChecks) > 0 {
		b.WithHealthChecks(d.HealthChecks...)
	}
	for name, port := range d.FixedPorts {
		b.WithFixedPort(name, port)
	}
	if d.Headless != nil {
		b.WithHeadless(*d.Headless)
	}
	if d.SPAProxy != nil {
		b.WithSPAProxy(*d.SPAProxy)
	}
	if d.ForwardedHeaders != nil {
		b.WithForwardedHeaders(*d.ForwardedHeaders)
	}

	durations := []struct {
		field string
		value string
		set   func(time.Duration) *Builder
	}{
		{"startupTimeout", d.StartupTimeout, b.WithStartupTimeout},
		{"initialDelay", d.InitialDelay, b.WithInitialDelay},
		{"pollInterval", d.PollInterval, b.WithPollInterval},
	}
	for _, duration := range durations {
		if duration.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(duration.value)
		if err != nil {
			return nil, &ValidationError{Field: duration.field, Reason: err.Error()}
		}
		duration.set(parsed)
	}
	return b, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// resolveEntryPath leaves a bare external executable name alone so it is looked up on PATH.
func resolveEntryPath(kind Kind, baseDir, path string) string {
	if kind == External && filepath.Base(path) == path && path != "." && path != ".." {
		return path
	}
	return resolvePath(baseDir, path)
}
