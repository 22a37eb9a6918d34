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

package jsonutil

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type listener struct {
	Port int
	Pid  int
	Urls []string
}

func ExampleMarshal() {
	b, err := Marshal(listener{Port: 5001, Pid: 4242, Urls: []string{"http://localhost:5001"}})
	if err != nil {
		fmt.Println("error:", err)
	}
	fmt.Println(b)
	// Output:
	// {"Port":5001,"Pid":4242,"Urls":["http://localhost:5001"]}
}

func ExampleMarshalIndent() {
	out, err := MarshalIndent([]listener{{Port: 80, Pid: 1}})
	if err != nil {
		fmt.Println("error:", err)
	}
	fmt.Println(out)
	// Output:
	// [
	//   {
	//     "Port": 80,
	//     "Pid": 1,
	//     "Urls": null
	//   }
	// ]
}

func TestUnmarshalFile(t *testing.T) {
	defer func() { ioUtil = ioU{} }()
	filename := "rumpelstilzchen"
	var contents listener

	// missing file
	ioUtil = ioUtilStub{err: fmt.Errorf("some error")}
	assert.Error(t, UnmarshalFile(filename, &contents), "expected readfile error")

	// non json content
	ioUtil = ioUtilStub{b: []byte("Sample text")}
	err := UnmarshalFile(filename, &contents)
	assert.Error(t, err, "expected json parsing error")
	assert.Contains(t, err.Error(), filename)

	// valid json content
	ioUtil = ioUtilStub{b: []byte(`{"Port":8080,"Pid":7}`)}
	assert.NoError(t, UnmarshalFile(filename, &contents), "message should parse successfully")
	assert.Equal(t, listener{Port: 8080, Pid: 7}, contents)
}

func TestUnmarshal(t *testing.T) {
	var dest interface{}
	assert.NoError(t, Unmarshal(`{"parameter": "1"}`, &dest))
	assert.NoError(t, Unmarshal(`"Hello"`, &dest))
	assert.Error(t, Unmarshal(`{"parameter":`, &dest))
}

func TestUnmarshalStrictRejectsUnknownFields(t *testing.T) {
	var dest listener
	assert.NoError(t, UnmarshalStrict([]byte(`{"Port":1}`), &dest))
	assert.Error(t, UnmarshalStrict([]byte(`{"Port":1,"Host":"x"}`), &dest))
}

// ioutil stub
type ioUtilStub struct {
	b   []byte
	err error
}

func (a ioUtilStub) ReadFile(filename string) ([]byte, error) {
	return a.b, a.err
}
