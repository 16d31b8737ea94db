package carafedata

import (
	"errors"
	"testing"

	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/models"
	"github.com/stretchr/testify/assert"
)

func TestEditDeletedRow(t *testing.T) {
	assert.Nil(t, checkEditable(false))

	// a soft-deleted row is as uneditable as a missing one
	assert.True(t, errors.Is(checkEditable(true), db.NotFound))
}

func TestSoftDeleteIdempotent(t *testing.T) {
	assert.True(t, softDeleteChanges(false))
	assert.False(t, softDeleteChanges(true)) // second delete is a no-op

	assert.True(t, reviveChanges(true))
	assert.False(t, reviveChanges(false)) // reviving visible content is a no-op
}

func TestNoopEdits(t *testing.T) {
	post := &models.Post{Title: "Welcome", Body: "Say hello!"}
	assert.False(t, postEditChanges(post, "Welcome", "Say hello!"))
	assert.True(t, postEditChanges(post, "Welcome!", "Say hello!"))
	assert.True(t, postEditChanges(post, "Welcome", "Say goodbye!"))

	comment := &models.Comment{Body: "first"}
	assert.False(t, commentEditChanges(comment, "first"))
	assert.True(t, commentEditChanges(comment, "second"))

	board := &models.Board{Name: "general", Description: "General discussion"}
	assert.False(t, boardEditChanges(board, "general", "General discussion"))
	assert.True(t, boardEditChanges(board, "general", "Anything goes"))
}

func TestEraseOrder(t *testing.T) {
	// Comments must go before posts, posts before the board; nothing else
	// cleans up after a missing cascade.
	assert.Len(t, eraseBoardStatements, 3)
	assert.Contains(t, eraseBoardStatements[0], "DELETE FROM comment")
	assert.Contains(t, eraseBoardStatements[1], "DELETE FROM post")
	assert.Contains(t, eraseBoardStatements[2], "DELETE FROM board")
}
