package website

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeletedPostKeepsItsAddress(t *testing.T) {
	// A direct lookup of a soft-deleted post gets an explicit notice,
	// distinguishable from an id that never existed.
	gone := postGoneResponse()
	assert.Equal(t, http.StatusGone, gone.StatusCode)
	assert.Contains(t, gone.Body.String(), "deleted")

	missing := FourOhFour(&RequestContext{})
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.NotEqual(t, gone.StatusCode, missing.StatusCode)
}
