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
	"fmt"
	"os"
	"sync"

	"github.com/serverhost/serverhost/agent/jsonutil"
)

var loadedConfig *ServerHostConfig
var lock sync.RWMutex

// Config loads the app configuration for serverhost.
// If reload is true, it loads the config afresh,
// otherwise it returns a previous loaded version, if any.
func Config(reload bool) (ServerHostConfig, error) {
	if reload || !isLoaded() {
		config := DefaultConfig()
		path, pathErr := getAppConfigPath()
		if pathErr != nil {
			cache(config)
			return config, nil
		}

		if err := jsonutil.UnmarshalFile(path, &config); err != nil {
			fmt.Println("Failed to unmarshal config override. Fall back to default.")
			return DefaultConfig(), err
		}
		parser(&config)
		cache(config)
	}
	return getCached(), nil
}

// LoadFile reads the configuration at path over the defaults without touching the cache.
func LoadFile(path string) (ServerHostConfig, error) {
	config := DefaultConfig()
	if err := jsonutil.UnmarshalFile(path, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to load configuration from %s, %v", path, err)
	}
	parser(&config)
	return config, nil
}

func isLoaded() bool {
	lock.RLock()
	defer lock.RUnlock()
	return loadedConfig != nil
}

func cache(config ServerHostConfig) {
	lock.Lock()
	defer lock.Unlock()
	loadedConfig = &config
}

func getCached() ServerHostConfig {
	lock.RLock()
	defer lock.RUnlock()
	return *loadedConfig
}

// getAppConfigPath returns the file named by SERVERHOST_CONFIG, then the platform specific one.
func getAppConfigPath() (path string, err error) {
	if path = os.Getenv(ConfigPathEnvironmentVariable); path != "" {
		if _, err = os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}

	if _, err = os.Stat(AppConfigPath); err != nil {
		return "", err
	}
	return AppConfigPath, nil
}

// DefaultConfig returns default serverhost configuration
func DefaultConfig() ServerHostConfig {
	return ServerHostConfig{
		Registry: RegistryCfg{
			Directory: DefaultRegistryDirectory(),
		},
		Lock: LockCfg{
			Directory:       DefaultLockDirectory(),
			WaitSliceMillis: DefaultLockWaitSliceMillis,
		},
		Launch: LaunchCfg{
			StartupTimeoutSeconds: DefaultStartupTimeoutSeconds,
			InitialDelayMillis:    DefaultInitialDelayMillis,
			PollIntervalMillis:    DefaultPollIntervalMillis,
			OutputBufferLines:     DefaultOutputBufferLines,
		},
		Probe: ProbeCfg{
			RequestTimeoutMillis: DefaultProbeRequestTimeoutMillis,
		},
		Locator: LocatorCfg{
			EnvironmentVariable: DefaultLocatorEnvironmentVariable,
			ConfigFileName:      DefaultLocatorConfigFileName,
			MaxScanDepth:        DefaultLocatorMaxScanDepth,
		},
		Orchestrator: OrchestratorCfg{
			ManifestFile: DefaultOrchestratorManifestFile,
		},
		Metrics: MetricsCfg{
			Namespace: DefaultMetricsNamespace,
		},
	}
}
