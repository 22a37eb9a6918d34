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

package backoffconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BackoffConfigTestSuite struct {
	suite.Suite
}

func TestBackoffConfigTestSuite(t *testing.T) {
	suite.Run(t, new(BackoffConfigTestSuite))
}

func (suite *BackoffConfigTestSuite) TestBound_ReturnsNumberWhenNumberIsInRange() {
	result, err := bound(10, 0, 100)

	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 10, result)
}

func (suite *BackoffConfigTestSuite) TestBound_ReturnsMinWhenNumberLessThanMin() {
	result, err := bound(10, 50, 100)

	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 50, result)
}

func (suite *BackoffConfigTestSuite) TestBound_ReturnsMaxWhenNumberGreaterThanMax() {
	result, err := bound(10, 1, 5)

	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 5, result)
}

func (suite *BackoffConfigTestSuite) TestBound_FailsWhenRangeIsInverted() {
	_, err := bound(10, 5, 1)

	assert.Error(suite.T(), err)
}

func (suite *BackoffConfigTestSuite) TestGetPollingBackoff_ReturnsConstantInterval() {
	policy, err := GetPollingBackoff(context.Background(), 20*time.Millisecond)

	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 20*time.Millisecond, policy.NextBackOff())
	assert.Equal(suite.T(), 20*time.Millisecond, policy.NextBackOff())
}

func (suite *BackoffConfigTestSuite) TestGetPollingBackoff_StopsWhenContextIsDone() {
	ctx, cancel := context.WithCancel(context.Background())
	policy, err := GetPollingBackoff(ctx, 20*time.Millisecond)
	assert.Nil(suite.T(), err)

	cancel()

	assert.Equal(suite.T(), backoff.Stop, policy.NextBackOff())
}

func (suite *BackoffConfigTestSuite) TestGetPollingBackoff_RejectsZeroInterval() {
	_, err := GetPollingBackoff(context.Background(), 0)

	assert.Error(suite.T(), err)
}

func (suite *BackoffConfigTestSuite) TestGetExponentialBackoff_GivesUpAfterMaxRetries() {
	policy, err := GetExponentialBackoff(time.Millisecond, 3)
	assert.Nil(suite.T(), err)

	attempts := 0
	err = backoff.Retry(func() error {
		attempts++
		return errors.New("still failing")
	}, policy)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), 4, attempts)
}

func (suite *BackoffConfigTestSuite) TestGetDefaultExponentialBackoff_StopsRetryingOnSuccess() {
	policy, err := GetDefaultExponentialBackoff()
	assert.Nil(suite.T(), err)

	attempts := 0
	err = backoff.Retry(func() error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	}, policy)

	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 2, attempts)
}
