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

// OS specific appconfig validator will apply limits and assign default values

package appconfig

func parser(config *ServerHostConfig) {
	config.Registry.Directory = getStringValue(config.Registry.Directory, DefaultRegistryDirectory())
	config.Lock.Directory = getStringValue(config.Lock.Directory, DefaultLockDirectory())
	config.Lock.WaitSliceMillis = getNumericValue(
		config.Lock.WaitSliceMillis,
		DefaultLockWaitSliceMillisMin,
		DefaultLockWaitSliceMillisMax,
		DefaultLockWaitSliceMillis)

	config.Launch.StartupTimeoutSeconds = getNumericValue(
		config.Launch.StartupTimeoutSeconds,
		DefaultStartupTimeoutSecondsMin,
		DefaultStartupTimeoutSecondsMax,
		DefaultStartupTimeoutSeconds)
	config.Launch.InitialDelayMillis = getNumericValue(
		config.Launch.InitialDelayMillis,
		DefaultInitialDelayMillisMin,
		DefaultInitialDelayMillisMax,
		DefaultInitialDelayMillis)
	config.Launch.PollIntervalMillis = getNumericValue(
		config.Launch.PollIntervalMillis,
		DefaultPollIntervalMillisMin,
		DefaultPollIntervalMillisMax,
		DefaultPollIntervalMillis)
	config.Launch.OutputBufferLines = getNumericValue(
		config.Launch.OutputBufferLines,
		DefaultOutputBufferLinesMin,
		DefaultOutputBufferLinesMax,
		DefaultOutputBufferLines)

	config.Probe.RequestTimeoutMillis = getNumeric64Value(
		config.Probe.RequestTimeoutMillis,
		DefaultProbeRequestTimeoutMillisMin,
		DefaultProbeRequestTimeoutMillisMax,
		DefaultProbeRequestTimeoutMillis)

	config.Locator.EnvironmentVariable = getStringValue(config.Locator.EnvironmentVariable, DefaultLocatorEnvironmentVariable)
	config.Locator.ConfigFileName = getStringValue(config.Locator.ConfigFileName, DefaultLocatorConfigFileName)
	config.Locator.MaxScanDepth = getNumericValue(
		config.Locator.MaxScanDepth,
		DefaultLocatorMaxScanDepthMin,
		DefaultLocatorMaxScanDepthMax,
		DefaultLocatorMaxScanDepth)

	config.Orchestrator.ManifestFile = getStringValue(config.Orchestrator.ManifestFile, DefaultOrchestratorManifestFile)
	config.Metrics.Namespace = getStringValue(config.Metrics.Namespace, DefaultMetricsNamespace)
}

func getStringValue(configValue string, defaultValue string) string {
	if configValue == "" {
		return defaultValue
	}
	return configValue
}

func getNumericValue(configValue int, minValue int, maxValue int, defaultValue int) int {
	if configValue < minValue || configValue > maxValue {
		return defaultValue
	}
	return configValue
}

func getNumeric64Value(configValue int64, minValue int64, maxValue int64, defaultValue int64) int64 {
	if configValue < minValue || configValue > maxValue {
		return defaultValue
	}
	return configValue
}
