package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRunIDFormat(t *testing.T) {
	id := NewRunID()
	assert.Len(t, id, 26)
}

func TestNewRunIDMonotonic(t *testing.T) {
	prev := NewRunID()
	for i := 0; i < 100; i++ {
		next := NewRunID()
		assert.Less(t, prev, next)
		prev = next
	}
}
