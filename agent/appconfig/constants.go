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

import (
	"os"
	"path/filepath"
)

const (
	// AppConfigFileName is the name of the configuration file
	AppConfigFileName = "serverhost.json"

	// ConfigPathEnvironmentVariable overrides the location of the configuration file
	ConfigPathEnvironmentVariable = "SERVERHOST_CONFIG"

	// DataFolderName is the folder, under the OS temp directory, shared by every serverhost process on a machine
	DataFolderName = "serverhost"

	RegistryFolderName = "registry"
	LockFolderName     = "locks"
	LogsFolderName     = "logs"

	DefaultLockWaitSliceMillis    = 250
	DefaultLockWaitSliceMillisMin = 10
	DefaultLockWaitSliceMillisMax = 10000

	DefaultStartupTimeoutSeconds    = 120
	DefaultStartupTimeoutSecondsMin = 1
	DefaultStartupTimeoutSecondsMax = 3600

	DefaultInitialDelayMillis    = 500
	DefaultInitialDelayMillisMin = 0
	DefaultInitialDelayMillisMax = 60000

	DefaultPollIntervalMillis    = 500
	DefaultPollIntervalMillisMin = 10
	DefaultPollIntervalMillisMax = 60000

	DefaultOutputBufferLines    = 200
	DefaultOutputBufferLinesMin = 1
	DefaultOutputBufferLinesMax = 100000

	DefaultProbeRequestTimeoutMillis    = 5000
	DefaultProbeRequestTimeoutMillisMin = 100
	DefaultProbeRequestTimeoutMillisMax = 300000

	DefaultLocatorEnvironmentVariable = "SERVERHOST_PROJECT_PATH"
	DefaultLocatorConfigFileName      = "serverhost.ini"
	DefaultLocatorMaxScanDepth        = 4
	DefaultLocatorMaxScanDepthMin     = 1
	DefaultLocatorMaxScanDepthMax     = 32

	DefaultOrchestratorManifestFile = "serverhost-manifest.json"

	DefaultMetricsNamespace = "serverhost"

	// Permission bits for the files and folders serverhost creates. The data folder is shared by every
	// user account running test jobs on the machine, so folders stay traversable.
	ReadWriteAccess        = 0644
	ReadWriteExecuteAccess = 0755

	// FileFlagsCreateOrTruncate are the flags used when a server output file is opened
	FileFlagsCreateOrTruncate = os.O_TRUNC | os.O_WRONLY | os.O_CREATE
)

// DefaultDataFolder is the machine-wide folder holding registry entries, locks and server logs.
func DefaultDataFolder() string {
	return filepath.Join(os.TempDir(), DataFolderName)
}

// DefaultRegistryDirectory returns the folder holding registry entries.
func DefaultRegistryDirectory() string {
	return filepath.Join(DefaultDataFolder(), RegistryFolderName)
}

// DefaultLockDirectory returns the folder holding the per port lock files.
func DefaultLockDirectory() string {
	return filepath.Join(DefaultDataFolder(), LockFolderName)
}

// DefaultLogsDirectory returns the folder receiving output of servers started from the command line.
func DefaultLogsDirectory() string {
	return filepath.Join(DefaultDataFolder(), LogsFolderName)
}
