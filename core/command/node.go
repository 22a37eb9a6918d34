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

package command

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/serverhost/serverhost/agent/launchspec"
)

const (
	PortVariable    = "PORT"
	BrowserVariable = "BROWSER"

	defaultPackageManager = "npm"
)

var goos = runtime.GOOS

// BuildNode builds "<package manager> start" or "<package manager> run <script>", with the extra
// tokens after a "--" separator. The port is passed in PORT.
func BuildNode(spec launchspec.Spec) (Command, error) {
	if err := requireEntryPath(spec); err != nil {
		return Command{}, err
	}
	if err := requireBaseURL(spec); err != nil {
		return Command{}, err
	}

	packageManager := spec.PackageManager()
	if packageManager == "" {
		packageManager = defaultPackageManager
	}
	if goos == "windows" && !strings.Contains(packageManager, ".") {
		packageManager += ".cmd"
	}

	var tokens []string
	if spec.Script() == "" || spec.Script() == "start" {
		tokens = []string{"start"}
	} else {
		tokens = []string{"run", spec.Script()}
	}
	if extra := spec.Args(); len(extra) > 0 {
		if extra[0] == argumentSeparator {
			extra = extra[1:]
		}
		tokens = append(tokens, argumentSeparator)
		tokens = append(tokens, extra...)
	}

	vars := map[string]string{PortVariable: strconv.Itoa(spec.Port())}
	if spec.Headless() {
		vars[BrowserVariable] = "none"
	}

	return Command{
		Executable: packageManager,
		Arguments:  JoinArgs(tokens),
		Env:        overlay(spec, vars, nil),
	}, nil
}
