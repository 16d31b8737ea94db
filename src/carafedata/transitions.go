package carafedata

import (
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/models"
)

// Pure checks for the soft-delete lifecycle. The transaction functions fetch
// a row, deleted or not, and run it through these, so the rules are pinned
// down by tests without a database.

// A soft-deleted row cannot be edited; for writers it is as gone as a row
// that never existed.
func checkEditable(deleted bool) error {
	if deleted {
		return db.NotFound
	}
	return nil
}

// Reports whether a soft delete changes anything. Deleting twice is a no-op.
func softDeleteChanges(deleted bool) bool {
	return !deleted
}

// Reports whether a revive changes anything. Reviving visible content is a
// no-op.
func reviveChanges(deleted bool) bool {
	return deleted
}

// An edit that changes nothing is a no-op and must not bump date_edited.

func postEditChanges(post *models.Post, title, body string) bool {
	return post.Title != title || post.Body != body
}

func commentEditChanges(comment *models.Comment, body string) bool {
	return comment.Body != body
}

func boardEditChanges(board *models.Board, name, description string) bool {
	return board.Name != name || board.Description != description
}
