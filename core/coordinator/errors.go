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

package coordinator

import (
	"errors"
	"fmt"
	"time"
)

// ErrLockTimeout is matched by LockTimeoutError.
var ErrLockTimeout = errors.New("timed out waiting for the server start lock")

// LockTimeoutError reports a start lock that was never released while the port never became healthy.
type LockTimeoutError struct {
	Port    int
	Elapsed time.Duration
}

func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("%v: the start lock for port %v was held by another process for %v and the port never became healthy",
		ErrLockTimeout, e.Port, e.Elapsed)
}

// Is makes errors.Is(err, ErrLockTimeout) hold.
func (e *LockTimeoutError) Is(target error) bool {
	return target == ErrLockTimeout
}
