package memdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Memdb.
func TestMemDB(t *testing.T) {
	// open the database
	db := New()

	// test get nonexistance key
	val, err := db.Get("TEST", []byte("none"))
	assert.Nil(t, err)
	assert.Equal(t, []byte(nil), val)

	// test set key/value pair
	err = db.Put("TEST", []byte("testKey"), []byte("testValue"))
	assert.Equal(t, nil, err)

	// test get value of key
	val, err = db.Get("TEST", []byte("testKey"))
	assert.Equal(t, err, nil)
	assert.Equal(t, []byte("testValue"), val)
}

// Test transaction commit and rollback.
func TestMemDBTx(t *testing.T) {
	db := New()

	err := db.Put("TEST", []byte("base"), []byte("committed"))
	assert.Nil(t, err)

	// writes staged in a transaction are invisible to the store
	// before commit
	tx, err := db.Begin()
	assert.Nil(t, err)

	err = tx.Put("TEST", []byte("staged"), []byte("value"))
	assert.Nil(t, err)

	val, err := tx.Get("TEST", []byte("staged"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("value"), val)

	val, err = db.Get("TEST", []byte("staged"))
	assert.Nil(t, err)
	assert.Equal(t, []byte(nil), val)

	err = tx.Commit()
	assert.Nil(t, err)

	val, err = db.Get("TEST", []byte("staged"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("value"), val)

	// a rolled back transaction leaves the store untouched
	tx, err = db.Begin()
	assert.Nil(t, err)

	err = tx.Put("TEST", []byte("base"), []byte("overwritten"))
	assert.Nil(t, err)
	err = tx.Delete("TEST", []byte("staged"))
	assert.Nil(t, err)

	err = tx.Rollback()
	assert.Nil(t, err)

	val, err = db.Get("TEST", []byte("base"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("committed"), val)

	val, err = db.Get("TEST", []byte("staged"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("value"), val)
}

// Test that transaction reads see the buffered writes and deletes.
func TestMemDBTxGetAll(t *testing.T) {
	db := New()

	err := db.Put("TEST", []byte("k1"), []byte("old"))
	assert.Nil(t, err)
	err = db.Put("TEST", []byte("k2"), []byte("gone"))
	assert.Nil(t, err)

	tx, err := db.Begin()
	assert.Nil(t, err)

	err = tx.Put("TEST", []byte("k1"), []byte("new"))
	assert.Nil(t, err)
	err = tx.Delete("TEST", []byte("k2"))
	assert.Nil(t, err)
	err = tx.Put("TEST", []byte("k3"), []byte("added"))
	assert.Nil(t, err)

	// the overwritten value shadows the stored one, the deleted
	// key is hidden and nothing shows up twice
	vals, err := tx.GetAll("TEST", []byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(vals))
	assert.ElementsMatch(t, [][]byte{[]byte("new"), []byte("added")}, vals)

	err = tx.Rollback()
	assert.Nil(t, err)

	// the store itself is untouched
	vals, err = db.GetAll("TEST", []byte("k"))
	assert.Nil(t, err)
	assert.ElementsMatch(t, [][]byte{[]byte("old"), []byte("gone")}, vals)
}
