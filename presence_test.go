package maru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPresenceIndex(t *testing.T) {
	assert.Equal(t, 1, nextPresenceIndex(0, 3))
	assert.Equal(t, 2, nextPresenceIndex(1, 3))
	assert.Equal(t, 0, nextPresenceIndex(2, 3))

	// a single text keeps showing itself
	assert.Equal(t, 0, nextPresenceIndex(0, 1))

	assert.Equal(t, 0, nextPresenceIndex(0, 0))
}
