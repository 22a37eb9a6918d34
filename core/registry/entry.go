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

package registry

import (
	"sort"
	"time"
)

// Entry is the persisted record of a server process, keyed by its configuration hash.
type Entry struct {
	// PID is 0 for servers this engine only attaches to and never spawned.
	PID        int       `json:"pid"`
	StartedAt  time.Time `json:"startedAt"`
	BaseURL    string    `json:"baseUrl"`
	Port       int       `json:"port"`
	Ports      []int     `json:"ports,omitempty"`
	ConfigHash string    `json:"configHash"`
	Kind       string    `json:"kind"`
	Executable string    `json:"executable,omitempty"`
	OwnerID    string    `json:"ownerId,omitempty"`
	Healthy    bool      `json:"healthy"`
}

// AllPorts returns Port followed by the other recorded ports, without duplicates or zeros.
func (e Entry) AllPorts() []int {
	seen := map[int]bool{}
	ports := []int{}
	if e.Port > 0 {
		seen[e.Port] = true
		ports = append(ports, e.Port)
	}
	extra := append([]int{}, e.Ports...)
	sort.Ints(extra)
	for _, port := range extra {
		if port <= 0 || seen[port] {
			continue
		}
		seen[port] = true
		ports = append(ports, port)
	}
	return ports
}

// UsesPort reports whether port is one of the entry's ports.
func (e Entry) UsesPort(port int) bool {
	for _, p := range e.AllPorts() {
		if p == port {
			return true
		}
	}
	return false
}

// AttachOnly reports whether the entry describes a server this engine did not spawn.
func (e Entry) AttachOnly() bool {
	return e.PID == 0
}
