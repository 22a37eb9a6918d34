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

package datastore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/serverhost/serverhost/agent/log"
	mockfs "github.com/serverhost/serverhost/core/registry/datastore/filesystem/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var (
	storeDir = "registry"
	key      = "abc123"
	record   = []byte(`{"pid":42}`)
)

type StoreTestSuite struct {
	suite.Suite
	mockFileSystem *mockfs.FileSystem
	dataStore      IStore
}

func (suite *StoreTestSuite) SetupTest() {
	mockFileSystem := &mockfs.FileSystem{}
	suite.mockFileSystem = mockFileSystem

	suite.dataStore = &LocalFileStore{
		dir:        storeDir,
		fileSystem: mockFileSystem,
		log:        log.NewMockLog()}
}

// Execute the test suite
func TestDataStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (suite *StoreTestSuite) TestWrite_WhenPathExists() {
	suite.mockFileSystem.On("Stat", storeDir).Return(nil, nil)
	suite.mockFileSystem.On("WriteFileAtomic", filepath.Join(storeDir, key+".json"), record).Return(nil)

	err := suite.dataStore.Write(key, record)

	assert.Nil(suite.T(), err)
	suite.mockFileSystem.AssertExpectations(suite.T())
}

func (suite *StoreTestSuite) TestWrite_WhenPathDoesNotExist() {
	notExist := errors.New("file does not exist")
	suite.mockFileSystem.On("Stat", storeDir).Return(nil, notExist)
	suite.mockFileSystem.On("IsNotExist", notExist).Return(true)
	suite.mockFileSystem.On("MkdirAll", storeDir, mock.Anything).Return(nil)
	suite.mockFileSystem.On("WriteFileAtomic", filepath.Join(storeDir, key+".json"), record).Return(nil)

	err := suite.dataStore.Write(key, record)

	assert.Nil(suite.T(), err)
	suite.mockFileSystem.AssertExpectations(suite.T())
}

func (suite *StoreTestSuite) TestWrite_Failure() {
	suite.mockFileSystem.On("Stat", storeDir).Return(nil, nil)
	suite.mockFileSystem.On("WriteFileAtomic", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	err := suite.dataStore.Write(key, record)

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), key)
}

func (suite *StoreTestSuite) TestRead() {
	suite.mockFileSystem.On("ReadFile", filepath.Join(storeDir, key+".json")).Return(record, nil)

	content, err := suite.dataStore.Read(key)

	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), record, content)
	suite.mockFileSystem.AssertExpectations(suite.T())
}

func (suite *StoreTestSuite) TestRead_NotFound() {
	notExist := errors.New("no such file")
	suite.mockFileSystem.On("ReadFile", mock.Anything).Return(nil, notExist)
	suite.mockFileSystem.On("IsNotExist", notExist).Return(true)

	_, err := suite.dataStore.Read(key)

	assert.True(suite.T(), errors.Is(err, ErrNotFound))
}

func (suite *StoreTestSuite) TestDelete() {
	suite.mockFileSystem.On("DeleteFile", filepath.Join(storeDir, key+".json")).Return(nil)

	assert.Nil(suite.T(), suite.dataStore.Delete(key))
	suite.mockFileSystem.AssertExpectations(suite.T())
}

func (suite *StoreTestSuite) TestKeys() {
	suite.mockFileSystem.On("ListFiles", storeDir, ".json").Return([]string{"a.json", "b.json"}, nil)

	keys, err := suite.dataStore.Keys()

	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), []string{"a", "b"}, keys)
}

func TestLocalFileStore_OnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "registry")
	store := NewLocalFileStore(log.NewMockLog(), dir)

	keys, err := store.Keys()
	assert.NoError(t, err)
	assert.Empty(t, keys)

	assert.NoError(t, store.Write("one", []byte("1")))
	assert.NoError(t, store.Write("two", []byte("2")))
	assert.NoError(t, store.Write("one", []byte("uno")))

	content, err := store.Read("one")
	assert.NoError(t, err)
	assert.Equal(t, "uno", string(content))

	keys, err = store.Keys()
	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, keys)

	assert.NoError(t, store.Delete("one"))
	assert.NoError(t, store.Delete("one"))
	_, err = store.Read("one")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = os.Stat(filepath.Join(dir, "two.json"))
	assert.NoError(t, err)
}
