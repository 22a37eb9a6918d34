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

// Package datastore provides a directory-backed key value store for json records
package datastore

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/serverhost/serverhost/agent/appconfig"
	"github.com/serverhost/serverhost/agent/log"
	"github.com/serverhost/serverhost/core/registry/datastore/filesystem"
)

const recordSuffix = ".json"

// ErrNotFound is returned by Read when no record exists for the key.
var ErrNotFound = errors.New("record not found")

type IStore interface {
	Write(key string, data []byte) error
	Read(key string) ([]byte, error)
	Delete(key string) error
	Keys() ([]string, error)
}

// LocalFileStore keeps one file per key in a directory shared by every process on the host.
type LocalFileStore struct {
	dir        string
	fileSystem filesystem.IFileSystem
	log        log.T
	lock       sync.RWMutex
}

// NewLocalFileStore returns a local file store rooted at dir
func NewLocalFileStore(log log.T, dir string) *LocalFileStore {
	return &LocalFileStore{
		dir:        dir,
		fileSystem: filesystem.NewFileSystem(),
		log:        log,
	}
}

// Dir returns the directory holding the records
func (localFileStore *LocalFileStore) Dir() string {
	return localFileStore.dir
}

// Write replaces the record stored under key
func (localFileStore *LocalFileStore) Write(key string, data []byte) error {
	localFileStore.lock.Lock()
	defer localFileStore.lock.Unlock()

	if exist, _ := localFileStore.exists(localFileStore.dir); !exist {
		if err := localFileStore.createPath(localFileStore.dir); err != nil {
			return err
		}
	}

	if err := localFileStore.fileSystem.WriteFileAtomic(localFileStore.path(key), data); err != nil {
		return fmt.Errorf("failed to write record %v, %v", key, err)
	}
	return nil
}

// Read returns the record stored under key
func (localFileStore *LocalFileStore) Read(key string) ([]byte, error) {
	localFileStore.lock.RLock()
	defer localFileStore.lock.RUnlock()

	content, err := localFileStore.fileSystem.ReadFile(localFileStore.path(key))
	if err != nil {
		if localFileStore.fileSystem.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read record %v, %v", key, err)
	}

	localFileStore.log.Tracef("record %s: %s", key, string(content))
	return content, nil
}

// Delete removes the record stored under key, a missing record is not an error
func (localFileStore *LocalFileStore) Delete(key string) error {
	localFileStore.lock.Lock()
	defer localFileStore.lock.Unlock()

	if err := localFileStore.fileSystem.DeleteFile(localFileStore.path(key)); err != nil {
		return fmt.Errorf("failed to delete record %v, %v", key, err)
	}
	return nil
}

// Keys returns every stored key, sorted
func (localFileStore *LocalFileStore) Keys() ([]string, error) {
	localFileStore.lock.RLock()
	defer localFileStore.lock.RUnlock()

	names, err := localFileStore.fileSystem.ListFiles(localFileStore.dir, recordSuffix)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, strings.TrimSuffix(name, recordSuffix))
	}
	return keys, nil
}

func (localFileStore *LocalFileStore) path(key string) string {
	return filepath.Join(localFileStore.dir, key+recordSuffix)
}

// exists returns true if the given file/directory exists, otherwise return false.
func (localFileStore *LocalFileStore) exists(name string) (bool, error) {
	_, err := localFileStore.fileSystem.Stat(name)
	if err == nil {
		return true, nil
	}
	if localFileStore.fileSystem.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// createPath makes directory with ReadWriteExecuteAccess
func (localFileStore *LocalFileStore) createPath(path string) error {
	err := localFileStore.fileSystem.MkdirAll(path, appconfig.ReadWriteExecuteAccess)
	if err != nil {
		err = fmt.Errorf("failed to create directory %v. %v", path, err)
	}
	return err
}
