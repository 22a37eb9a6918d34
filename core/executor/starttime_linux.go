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

//go:build linux
// +build linux

package executor

import (
	"fmt"
	"math"
	"time"

	"github.com/prometheus/procfs"
)

var procMountPoint = procfs.DefaultMountPoint

// processStartTime reads the start time of pid from /proc/<pid>/stat and the boot time in /proc/stat.
func processStartTime(pid int) (time.Time, error) {
	fs, err := procfs.NewFS(procMountPoint)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to open %v, %v", procMountPoint, err)
	}
	proc, err := fs.Proc(pid)
	if err != nil {
		return time.Time{}, err
	}
	stat, err := proc.Stat()
	if err != nil {
		return time.Time{}, err
	}
	seconds, err := stat.StartTime()
	if err != nil {
		return time.Time{}, err
	}
	whole, fraction := math.Modf(seconds)
	return time.Unix(int64(whole), int64(fraction*float64(time.Second))), nil
}
