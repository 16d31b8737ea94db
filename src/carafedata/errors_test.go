package carafedata

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLength(t *testing.T) {
	assert.Nil(t, validateLength("name", "general", 4, 80))

	err := validateLength("name", "abc", 4, 80)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "name")

	err = validateLength("name", strings.Repeat("x", 81), 4, 80)
	assert.True(t, errors.Is(err, ErrValidation))

	// counts runes, not bytes
	assert.Nil(t, validateLength("name", "héllo", 4, 5))
}

func TestConflictErr(t *testing.T) {
	err := conflictErr("board name")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.Contains(t, err.Error(), "board name")
}
