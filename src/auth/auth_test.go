package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordRoundTrip(t *testing.T) {
	hp := HashPassword("corret horse battery staple")

	ok, err := CheckPassword("corret horse battery staple", hp)
	assert.Nil(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("wrong password", hp)
	assert.Nil(t, err)
	assert.False(t, ok)
}

func TestPasswordStringRoundTrip(t *testing.T) {
	hp := HashPassword("bananas")

	parsed, err := ParsePasswordString(hp.String())
	assert.Nil(t, err)
	assert.Equal(t, hp, parsed)

	ok, err := CheckPassword("bananas", parsed)
	assert.Nil(t, err)
	assert.True(t, ok)
}

func TestParsePasswordStringErrors(t *testing.T) {
	_, err := ParsePasswordString("not a password string")
	assert.NotNil(t, err)
}
