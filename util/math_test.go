package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxInt64(t *testing.T) {
	assert.Equal(t, int64(2), MaxInt64(int64(1), int64(2)))
	assert.Equal(t, int64(2), MaxInt64(int64(2), int64(-3)))
	assert.Equal(t, int64(0), MaxInt64(int64(0), int64(0)))
}
