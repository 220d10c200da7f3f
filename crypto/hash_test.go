package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// test hash determinism
func TestSHA256Hash(t *testing.T) {
	h1 := SHA256Hash([]byte("go-creditline"))
	h2 := SHA256Hash([]byte("go-creditline"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, SHA256Hash([]byte("other")))

	b := SHA256HashBytes([]byte("go-creditline"))
	assert.Equal(t, 32, len(b))
}
