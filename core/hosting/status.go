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

package hosting

import (
	"fmt"
	"time"
)

// ServerStatus describes the server a strategy manages.
type ServerStatus struct {
	PID        int    `json:"pid"`
	Running    bool   `json:"running"`
	Healthy    bool   `json:"healthy"`
	BaseURL    string `json:"baseUrl"`
	ConfigHash string `json:"configHash,omitempty"`
	// Reused is set when the server was started by someone else.
	Reused bool `json:"reused"`
}

// StartError reports a server that could not be started or reused.
type StartError struct {
	ConfigHash string
	Port       int
	Elapsed    time.Duration
	Err        error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start server (config %v, port %v) after %v, %v", e.ConfigHash, e.Port, e.Elapsed, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}
