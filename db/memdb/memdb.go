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

package memdb

import (
	"fmt"
	"strings"
	"sync"

	"github.com/creditline/go-creditline/db"
)

func init() {
	db.Register("memdb", func(path string) db.Database { return New() })
}

type memdb struct {
	db map[string][]byte
	sync.RWMutex
}

// New creates a memory-based key-value store
// which is mainly used for testing.
func New() db.Database {
	return &memdb{db: make(map[string][]byte)}
}

func (m *memdb) NewBucket(name string) error {
	return nil
}

func dbKey(bucket string, key []byte) string {
	return bucket + "/" + string(key)
}

// Put writes the key/value pair to database.
func (m *memdb) Put(bucket string, key, value []byte) error {
	m.Lock()
	defer m.Unlock()

	if m.db == nil {
		return fmt.Errorf("memdb is closed")
	}

	m.db[dbKey(bucket, key)] = value
	return nil
}

// Delete deletes the key from the database.
func (m *memdb) Delete(bucket string, key []byte) error {
	m.Lock()
	defer m.Unlock()

	if m.db == nil {
		return fmt.Errorf("memdb is closed")
	}

	delete(m.db, dbKey(bucket, key))
	return nil
}

// Get retrieves the value of the key from database. A missing key
// yields a nil value, the same as the boltdb backend.
func (m *memdb) Get(bucket string, key []byte) ([]byte, error) {
	m.RLock()
	defer m.RUnlock()

	if m.db == nil {
		return nil, fmt.Errorf("memdb is closed")
	}

	if val, ok := m.db[dbKey(bucket, key)]; ok {
		return val, nil
	}
	return nil, nil
}

// GetAll retrieves the values of the keys with prefix from database.
func (m *memdb) GetAll(bucket string, keyPrefix []byte) ([][]byte, error) {
	m.RLock()
	defer m.RUnlock()

	if m.db == nil {
		return nil, fmt.Errorf("memdb is closed")
	}

	prefix := dbKey(bucket, keyPrefix)

	var vals [][]byte
	for k, v := range m.db {
		if strings.HasPrefix(k, prefix) {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

// Close closes the underlying database.
func (m *memdb) Close() error {
	m.Lock()
	defer m.Unlock()

	m.db = nil
	return nil
}

// Begin returns a write-buffered transaction, mutations are staged
// in the buffer and applied to the store only on Commit.
func (m *memdb) Begin() (db.Tx, error) {
	mtx := &memdbTx{
		db:      m,
		writes:  make(map[string][]byte),
		deletes: make(map[string]bool),
	}
	return mtx, nil
}

// memdbTx buffers the writes of a transaction so that a Rollback
// leaves the store untouched.
type memdbTx struct {
	db      *memdb
	writes  map[string][]byte
	deletes map[string]bool
	done    bool
}

func (mtx *memdbTx) Get(bucket string, key []byte) ([]byte, error) {
	if mtx.done {
		return nil, fmt.Errorf("transaction is closed")
	}

	k := dbKey(bucket, key)
	if val, ok := mtx.writes[k]; ok {
		return val, nil
	}
	if mtx.deletes[k] {
		return nil, nil
	}
	return mtx.db.Get(bucket, key)
}

func (mtx *memdbTx) GetAll(bucket string, keyPrefix []byte) ([][]byte, error) {
	if mtx.done {
		return nil, fmt.Errorf("transaction is closed")
	}

	prefix := dbKey(bucket, keyPrefix)

	// overlay the buffer over the store, a buffered write shadows
	// the stored value and a buffered delete hides it
	mtx.db.RLock()
	if mtx.db.db == nil {
		mtx.db.RUnlock()
		return nil, fmt.Errorf("memdb is closed")
	}
	var vals [][]byte
	for k, v := range mtx.db.db {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if _, ok := mtx.writes[k]; ok {
			continue
		}
		if mtx.deletes[k] {
			continue
		}
		vals = append(vals, v)
	}
	mtx.db.RUnlock()

	for k, v := range mtx.writes {
		if strings.HasPrefix(k, prefix) {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

func (mtx *memdbTx) Put(bucket string, key, value []byte) error {
	if mtx.done {
		return fmt.Errorf("transaction is closed")
	}

	k := dbKey(bucket, key)
	mtx.writes[k] = value
	delete(mtx.deletes, k)
	return nil
}

func (mtx *memdbTx) Delete(bucket string, key []byte) error {
	if mtx.done {
		return fmt.Errorf("transaction is closed")
	}

	k := dbKey(bucket, key)
	delete(mtx.writes, k)
	mtx.deletes[k] = true
	return nil
}

func (mtx *memdbTx) Rollback() error {
	if mtx.done {
		return fmt.Errorf("transaction is closed")
	}

	mtx.done = true
	mtx.writes = nil
	mtx.deletes = nil
	return nil
}

func (mtx *memdbTx) Commit() error {
	if mtx.done {
		return fmt.Errorf("transaction is closed")
	}

	mtx.db.Lock()
	defer mtx.db.Unlock()

	if mtx.db.db == nil {
		return fmt.Errorf("memdb is closed")
	}

	for k, v := range mtx.writes {
		mtx.db.db[k] = v
	}
	for k := range mtx.deletes {
		delete(mtx.db.db, k)
	}

	mtx.done = true
	mtx.writes = nil
	mtx.deletes = nil
	return nil
}
