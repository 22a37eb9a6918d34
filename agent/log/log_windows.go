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

//go:build windows
// +build windows

package log

import (
	"os"
	"path/filepath"
)

// DefaultSeelogConfigFilePath specifies the default seelog location.
var DefaultSeelogConfigFilePath = filepath.Join(os.Getenv("ProgramData"), "serverhost", "seelog.xml")

// DefaultLogDir is the directory the built-in configuration writes to.
var DefaultLogDir = filepath.Join(os.Getenv("ProgramData"), "serverhost", "logs")
