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

// Package backoffconfig builds the retry policies used when polling ports, health endpoints and lock files.
package backoffconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMultiplier      = 2.0
	defaultMaxInterval     = 2 * time.Second
	defaultJitterFactor    = 0.2
	defaultInitialInterval = 50 * time.Millisecond
	defaultMaxRetries      = 5

	minPollInterval = time.Millisecond
)

// GetPollingBackoff returns a fixed interval policy that stops once ctx is done. Readiness polling and
// lock waiting use it so whole cycles run one interval apart until the startup deadline.
func GetPollingBackoff(ctx context.Context, interval time.Duration) (backoff.BackOffContext, error) {
	if interval < minPollInterval {
		return nil, fmt.Errorf("poll interval %v is below %v", interval, minPollInterval)
	}
	return backoff.WithContext(backoff.NewConstantBackOff(interval), ctx), nil
}

// GetDefaultExponentialBackoff returns the policy used for short file system retries.
func GetDefaultExponentialBackoff() (backoff.BackOff, error) {
	return GetExponentialBackoff(defaultInitialInterval, defaultMaxRetries)
}

// GetExponentialBackoff returns a jittered exponential policy giving up after maxRetries retries.
//
// initialInterval is the amount of time to wait after the first failure before retrying the operation
// maxRetries is the number of times backoff should retry in the event of a failure, bounded to [1, 100]
func GetExponentialBackoff(initialInterval time.Duration, maxRetries int) (backoff.BackOff, error) {
	if initialInterval <= 0 {
		initialInterval = backoff.DefaultInitialInterval
	}

	maxRetries, err := bound(maxRetries, 1, 100)
	if err != nil {
		return nil, err
	}

	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = initialInterval
	exponential.MaxInterval = defaultMaxInterval
	exponential.Multiplier = defaultMultiplier
	exponential.RandomizationFactor = defaultJitterFactor
	exponential.MaxElapsedTime = 0
	exponential.Reset()

	return backoff.WithMaxRetries(exponential, uint64(maxRetries)), nil
}

// bound returns a number that is constrained to be within a particular range (min, max).
func bound(number int, min int, max int) (int, error) {
	if max < min {
		return number, errors.New(fmt.Sprintf("Invalid input. min (%d) is greater than max (%d)", min, max))
	}

	if number < min {
		return min, nil
	} else if max < number {
		return max, nil
	}
	return number, nil
}
