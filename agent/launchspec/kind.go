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

// Package launchspec describes how to start a test server: the immutable Spec, the Builder that
// validates it, the configuration hash derived from it, and YAML launch documents.
package launchspec

import (
	"fmt"
	"strings"
)

// Kind is the runtime kind of a server.
type Kind string

const (
	StandardWeb             Kind = "standard-web"
	Node                    Kind = "node"
	External                Kind = "external"
	DistributedOrchestrator Kind = "distributed-orchestrator"
	InProcessHarness        Kind = "in-process-harness"
)

var allKinds = []Kind{StandardWeb, Node, External, DistributedOrchestrator, InProcessHarness}

// Kinds returns every supported runtime kind.
func Kinds() []Kind {
	return append([]Kind{}, allKinds...)
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, kind := range allKinds {
		if strings.EqualFold(string(kind), strings.TrimSpace(name)) {
			return kind, nil
		}
	}
	return "", &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown runtime kind %q", name)}
}

// requiresBaseURL reports whether specifications of this kind must carry a base URL.
func (k Kind) requiresBaseURL() bool {
	return k != InProcessHarness
}

// requiresEntryPath reports whether specifications of this kind must carry an entry path.
func (k Kind) requiresEntryPath() bool {
	return k != External
}

// Spawns reports whether servers of this kind are started as a child process by the launcher.
func (k Kind) Spawns() bool {
	return k == StandardWeb || k == Node || k == External
}
