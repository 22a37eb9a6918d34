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

// Package main implements the serverhost command line
package main

import (
	"os"

	"github.com/serverhost/serverhost/agent/cli"
	_ "github.com/serverhost/serverhost/agent/cli/clicommand"
)

func main() {
	os.Exit(cli.RunCommand(os.Args, os.Stdout))
}
