package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 3, OrDefault(3, 5))
	assert.Equal(t, 5, OrDefault(0, 5))
	assert.Equal(t, "yes", OrDefault("", "yes"))
}

func TestIntClamp(t *testing.T) {
	assert.Equal(t, 3, IntClamp(1, 3, 5))
	assert.Equal(t, 1, IntClamp(1, -2, 5))
	assert.Equal(t, 5, IntClamp(1, 10, 5))
}
