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

package locator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/serverhost/serverhost/agent/fileutil"
	"github.com/serverhost/serverhost/agent/launchspec"
	"gopkg.in/ini.v1"
)

const (
	projectSection = "project"
	pathKey        = "path"
)

// ConfigFileStrategy reads the nearest configuration file found walking up from the start directory:
//
//	[project]
//	path = src/Web/Web.csproj
//	node = client
//
// A key named after the server kind wins over path. Relative paths are resolved against the file.
type ConfigFileStrategy struct {
	fileName string
}

// NewConfigFileStrategy reads the entry path from the nearest fileName up the directory tree.
func NewConfigFileStrategy(fileName string) *ConfigFileStrategy {
	return &ConfigFileStrategy{fileName: fileName}
}

func (s *ConfigFileStrategy) Name() string { return "config file" }

func (s *ConfigFileStrategy) Locate(spec launchspec.Spec, start string) (string, bool, error) {
	if s.fileName == "" {
		return "", false, nil
	}
	for _, dir := range ancestors(start) {
		configPath := filepath.Join(dir, s.fileName)
		if !fileutil.Exists(configPath) {
			continue
		}
		config, err := ini.Load(configPath)
		if err != nil {
			return "", false, fmt.Errorf("failed to load %v, %v", configPath, err)
		}
		section := config.Section(projectSection)
		value := section.Key(string(spec.Kind())).String()
		if value == "" {
			value = section.Key(pathKey).String()
		}
		if value == "" {
			return "", false, nil
		}
		path := absolute(dir, value)
		if _, err = os.Stat(path); err != nil {
			return "", false, fmt.Errorf("%v names %v, %v", configPath, path, err)
		}
		return path, true, nil
	}
	return "", false, nil
}
