// Copyright 2024 The go-creditline Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package db

import (
	"fmt"
)

// Getter wraps the read methods of the underlying store. A missing
// key yields a nil value and a nil error.
type Getter interface {
	Get(bucket string, key []byte) ([]byte, error)
	GetAll(bucket string, keyPrefix []byte) ([][]byte, error)
}

// Putter wraps the write methods of the underlying store.
type Putter interface {
	Put(bucket string, key, value []byte) error
	Delete(bucket string, key []byte) error
}

// Tx is a writable store transaction. Mutations made through the
// transaction become visible to later reads in the same transaction
// but are persisted only on Commit.
type Tx interface {
	Getter
	Putter
	Rollback() error
	Commit() error
}

// Database is the generic interface a store backend should implement.
type Database interface {
	Getter
	Putter
	NewBucket(name string) error
	Begin() (Tx, error)
	Close() error
}

// Ctor creates a new database instance in the specified file path.
type Ctor func(path string) Database

var constructors = make(map[string]Ctor)

// Register makes a database backend available by name, backends
// should call this in their package init.
func Register(name string, ctor Ctor) {
	constructors[name] = ctor
}

// GetDB returns the constructor of the named database backend.
func GetDB(name string) (Ctor, error) {
	if _, ok := constructors[name]; !ok {
		return nil, fmt.Errorf("database backend %s not registered", name)
	}
	return constructors[name], nil
}
