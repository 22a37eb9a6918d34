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

// Package clicommand contains the implementation of all commands for the serverhost cli
package clicommand

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/cli/cliutil"
	"github.com/serverhost/serverhost/agent/context"
	"github.com/serverhost/serverhost/agent/launchspec"
	"github.com/serverhost/serverhost/core/hosting"
)

const (
	specFlag = "spec"
	portFlag = "port"
)

var newDependencies = hosting.NewDefaultDependencies

var logsDirectory = appconfig.DefaultLogsDirectory

type helpParams struct {
	CliName     string
	CommandName string
	SpecFlag    string
	PortFlag    string
}

func renderHelp(name string, text string) string {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return text
	}
	buf := new(bytes.Buffer)
	_ = t.Execute(buf, helpParams{cliutil.CliName, name, cliutil.FormatFlag(specFlag), cliutil.FormatFlag(portFlag)})
	return buf.String()
}

// validateInput rejects subcommands and unknown parameters, and requires a single --spec when needsSpec is set
func validateInput(command string, subcommands []string, parameters map[string][]string, needsSpec bool, allowed ...string) error {
	validation := make([]string, 0)
	if len(subcommands) > 0 {
		return fmt.Errorf("%v does not support subcommand %v", command, subcommands)
	}
	if needsSpec {
		if _, err := cliutil.SingleValue(parameters, specFlag); err != nil {
			validation = append(validation, err.Error())
		}
		allowed = append(allowed, specFlag)
	}
	validation = append(validation, cliutil.UnknownParameters(parameters, allowed...)...)
	if len(validation) > 0 {
		return errors.New(strings.Join(validation, "\n"))
	}
	return nil
}

// loadSpec builds the specification named by --spec. Spawned servers without an output file write to the
// logs directory so they keep running once the cli exits.
func loadSpec(ctx context.T, deps hosting.Dependencies, parameters map[string][]string) (launchspec.Spec, error) {
	path, err := cliutil.SingleValue(parameters, specFlag)
	if err != nil {
		return launchspec.Spec{}, err
	}
	launch := ctx.AppConfig().Launch
	builder, err := launchspec.LoadDocumentWithDefaults(path, launchspec.Defaults{
		StartupTimeout: time.Duration(launch.StartupTimeoutSeconds) * time.Second,
		InitialDelay:   time.Duration(launch.InitialDelayMillis) * time.Millisecond,
		PollInterval:   time.Duration(launch.PollIntervalMillis) * time.Millisecond,
	})
	if err != nil {
		return launchspec.Spec{}, err
	}
	spec, err := builder.Build()
	if err != nil {
		return launchspec.Spec{}, err
	}
	if spec.NeedsEntryPath() && deps.Locator != nil {
		if spec, err = deps.Locator.Resolve(spec); err != nil {
			return launchspec.Spec{}, err
		}
	}
	if spec.OutputFile() == "" && spec.Kind().Spawns() {
		spec = spec.WithOutputFile(filepath.Join(logsDirectory(), spec.ConfigHash()+".log"))
	}
	return spec, nil
}
