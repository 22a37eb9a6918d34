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

package launchspec

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"
	"strconv"
)

// ConfigHash returns the hex sha256 digest of every field that changes what the server does. Timeouts,
// delays, the poll interval, health paths and policy flags are excluded, so specifications that only
// differ in how patiently they wait share a hash.
func (s Spec) ConfigHash() string {
	h := sha256.New()
	writeField(h, string(s.kind))
	writeField(h, s.baseURL)
	writeField(h, s.entryPath)
	writeField(h, s.workingDir)
	writeField(h, s.framework)
	writeField(h, s.configuration)

	writeField(h, strconv.Itoa(len(s.args)))
	for _, arg := range s.args {
		writeField(h, arg)
	}

	keys := make([]string, 0, len(s.env))
	for key := range s.env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	writeField(h, strconv.Itoa(len(keys)))
	for _, key := range keys {
		writeField(h, key)
		writeField(h, s.env[key].value)
	}

	writeField(h, s.script)
	writeField(h, s.packageManager)
	writeField(h, toggleString(s.spaProxy))
	writeField(h, toggleString(s.forwardedHeaders))
	writeField(h, s.dashboardURL)
	writeField(h, s.telemetryEndpoint)
	writeField(h, s.resourceName)

	names := make([]string, 0, len(s.fixedPorts))
	for name := range s.fixedPorts {
		names = append(names, name)
	}
	sort.Strings(names)
	writeField(h, strconv.Itoa(len(names)))
	for _, name := range names {
		writeField(h, name)
		writeField(h, strconv.Itoa(s.fixedPorts[name]))
	}

	return hex.EncodeToString(h.Sum(nil))
}

// writeField length-prefixes value so adjacent fields cannot run into each other.
func writeField(h hash.Hash, value string) {
	fmt.Fprintf(h, "%d:%s;", len(value), value)
}

func toggleString(b *bool) string {
	if b == nil {
		return "unset"
	}
	return strconv.FormatBool(*b)
}
