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

// Package filesystem wraps the file operations the registry store performs so they can be mocked.
package filesystem

import (
	"os"

	"github.com/serverhost/serverhost/agent/fileutil"
)

type IFileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFileAtomic(filename string, data []byte) error
	ReadFile(filename string) ([]byte, error)
	Stat(name string) (os.FileInfo, error)
	IsNotExist(err error) bool
	DeleteFile(fileName string) error
	ListFiles(dir string, suffix string) ([]string, error)
}

type FileSystem struct{}

func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// MkdirAll makes directory
func (fileSystem *FileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFileAtomic replaces the content of filename in a single rename
func (fileSystem *FileSystem) WriteFileAtomic(filename string, data []byte) error {
	return fileutil.WriteFileAtomic(filename, data)
}

// ReadFile reads data from a file
func (fileSystem *FileSystem) ReadFile(filename string) ([]byte, error) {
	return os.ReadFile(filename)
}

// Stat returns a FileInfo describing the named file.
func (fileSystem *FileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// IsNotExist returns a boolean indicating whether the error is known to
// report that a file or directory does not exist.
func (fileSystem *FileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

// DeleteFile deletes the file, a missing file is not an error
func (fileSystem *FileSystem) DeleteFile(fileName string) error {
	return fileutil.DeleteFile(fileName)
}

// ListFiles returns the sorted names of the files in dir ending with suffix
func (fileSystem *FileSystem) ListFiles(dir string, suffix string) ([]string, error) {
	return fileutil.ListFiles(dir, suffix)
}
