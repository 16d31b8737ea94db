package carafedata

import (
	"context"
	"time"

	"github.com/carafeforum/carafe/src/config"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/models"
	"github.com/carafeforum/carafe/src/oops"
	"github.com/carafeforum/carafe/src/perms"
)

type CommentAndStuff struct {
	Comment models.Comment `db:"comment"`
	Author  models.User    `db:"author"`
}

// Fetches a post's non-deleted comments in chronological reading order
// (ascending date, ascending id on ties).
func FetchComments(ctx context.Context, dbConn db.ConnOrTx, postID int) ([]*CommentAndStuff, error) {
	comments, err := db.Query[CommentAndStuff](ctx, dbConn,
		`
		SELECT $columns
		FROM
			comment
			JOIN board_user AS author ON author.id = comment.author_id
		WHERE
			comment.post_id = $1
			AND NOT comment.deleted
		ORDER BY comment.date ASC, comment.id ASC
		`,
		postID,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch comments")
	}

	return comments, nil
}

// Creates a comment on a post. Any authenticated user may comment; the post
// must exist and not be soft-deleted.
func CreateComment(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, postID int, body string) (*models.Comment, error) {
	if !perms.Can(actor, perms.CreateComment, 0) {
		return nil, ErrForbidden
	}
	if err := validateLength("body", body, config.TextMin, config.TextMax); err != nil {
		return nil, err
	}
	authorID, _ := actor.UserID()

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	_, err = fetchPostRow(ctx, tx, postID, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	comment, err := db.QueryOne[models.Comment](ctx, tx,
		`
		INSERT INTO comment (post_id, author_id, body, date, date_edited, deleted)
		VALUES ($1, $2, $3, $4, $4, FALSE)
		RETURNING $columns
		`,
		postID, authorID, body, now,
	)
	if err != nil {
		return nil, oops.New(err, "failed to insert comment")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit new comment")
	}

	return comment, nil
}

/*
Edits a comment's body. Author only; admins cannot edit other people's
comments even though they can delete them. Editing a soft-deleted or missing
comment fails with db.NotFound. A no-change edit is a no-op.
*/
func EditComment(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, commentID int, body string) (updated bool, err error) {
	if err := validateLength("body", body, config.TextMin, config.TextMax); err != nil {
		return false, err
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return false, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	comment, err := fetchCommentRow(ctx, tx, commentID, true)
	if err != nil {
		return false, err
	}
	if err := checkEditable(comment.Deleted); err != nil {
		return false, err
	}
	if !perms.Can(actor, perms.EditComment, comment.AuthorID) {
		return false, ErrForbidden
	}

	if !commentEditChanges(comment, body) {
		return false, nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE comment SET body = $1, date_edited = $2 WHERE id = $3`,
		body, time.Now(), commentID,
	)
	if err != nil {
		return false, oops.New(err, "failed to update comment")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return false, oops.New(err, "failed to commit comment edit")
	}

	return true, nil
}

// Hides a comment. Author or admin. Idempotent.
func SoftDeleteComment(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, commentID int) error {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	comment, err := fetchCommentRow(ctx, tx, commentID, true)
	if err != nil {
		return err
	}
	if !perms.Can(actor, perms.SoftDeleteComment, comment.AuthorID) {
		return ErrForbidden
	}
	if !softDeleteChanges(comment.Deleted) {
		return nil
	}

	_, err = tx.Exec(ctx, `UPDATE comment SET deleted = TRUE WHERE id = $1`, commentID)
	if err != nil {
		return oops.New(err, "failed to soft delete comment")
	}

	return tx.Commit(ctx)
}

// Restores a soft-deleted comment. Admin only.
func ReviveComment(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, commentID int) error {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	comment, err := fetchCommentRow(ctx, tx, commentID, true)
	if err != nil {
		return err
	}
	if !perms.Can(actor, perms.ReviveComment, comment.AuthorID) {
		return ErrForbidden
	}
	if !reviveChanges(comment.Deleted) {
		return nil
	}

	_, err = tx.Exec(ctx, `UPDATE comment SET deleted = FALSE WHERE id = $1`, commentID)
	if err != nil {
		return oops.New(err, "failed to revive comment")
	}

	return tx.Commit(ctx)
}

func fetchCommentRow(ctx context.Context, dbConn db.ConnOrTx, commentID int, includeDeleted bool) (*models.Comment, error) {
	var qb db.QueryBuilder
	qb.Add(`SELECT $columns FROM comment WHERE id = $?`, commentID)
	if !includeDeleted {
		qb.Add(`AND NOT deleted`)
	}

	comment, err := db.QueryOne[models.Comment](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		if err == db.NotFound {
			return nil, db.NotFound
		}
		return nil, oops.New(err, "failed to fetch comment")
	}

	return comment, nil
}
