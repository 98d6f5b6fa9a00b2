package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringInSlice(t *testing.T) {
	assert.True(t, StringInSlice("Queued", []string{"Queued", "Processing"}))
	assert.False(t, StringInSlice("Completed", []string{"Queued", "Processing"}))
}

func TestClampFloat(t *testing.T) {
	assert.Equal(t, 0.0, ClampFloat(-0.2, 0, 1))
	assert.Equal(t, 1.0, ClampFloat(1.7, 0, 1))
	assert.Equal(t, 0.5, ClampFloat(0.5, 0, 1))
}

func TestIs2xx(t *testing.T) {
	assert.True(t, Is2xx(200))
	assert.True(t, Is2xx(204))
	assert.False(t, Is2xx(301))
	assert.False(t, Is2xx(500))
}
