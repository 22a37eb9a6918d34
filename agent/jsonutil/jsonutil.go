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

// Package jsonutil contains the json helpers shared by the registry, configuration and command line.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonFormat json formatIndent
const jsonFormat = "  "

// Marshal marshals an object to a json string.
// Returns empty string if marshal fails.
func Marshal(obj interface{}) (result string, err error) {
	var resultB []byte
	if resultB, err = json.Marshal(obj); err != nil {
		return
	}
	return string(resultB), nil
}

// MarshalIndent is like Marshal but indents the output with two spaces.
func MarshalIndent(obj interface{}) (result string, err error) {
	var resultB []byte
	if resultB, err = json.MarshalIndent(obj, "", jsonFormat); err != nil {
		return
	}
	return string(resultB), nil
}

// UnmarshalFile reads the content of a file then Unmarshals the content to an object.
func UnmarshalFile(filePath string, dest interface{}) (err error) {
	content, err := ioUtil.ReadFile(filePath)
	if err != nil {
		return
	}
	if err = json.Unmarshal(content, dest); err != nil {
		return fmt.Errorf("failed to parse %s, %v", filePath, err)
	}
	return nil
}

// Unmarshal unmarshals the content in string format to an object.
func Unmarshal(jsonContent string, dest interface{}) (err error) {
	return json.Unmarshal([]byte(jsonContent), dest)
}

// UnmarshalStrict is like Unmarshal but rejects fields dest does not declare.
func UnmarshalStrict(content []byte, dest interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}
