package carafedata

import (
	"context"

	"github.com/carafeforum/carafe/src/config"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/models"
	"github.com/carafeforum/carafe/src/oops"
	"github.com/carafeforum/carafe/src/perms"
)

type BoardsQuery struct {
	BoardIDs []int

	// Soft-deleted boards are hidden from listings by default, but remain
	// addressable by id for moderation.
	IncludeDeleted bool
}

func FetchBoards(ctx context.Context, dbConn db.ConnOrTx, q BoardsQuery) ([]*models.Board, error) {
	var qb db.QueryBuilder
	qb.Add(`
		SELECT $columns
		FROM board
		WHERE TRUE
	`)
	if len(q.BoardIDs) > 0 {
		qb.Add(`AND board.id = ANY ($?)`, q.BoardIDs)
	}
	if !q.IncludeDeleted {
		qb.Add(`AND NOT board.deleted`)
	}
	qb.Add(`ORDER BY board.id ASC`)

	boards, err := db.Query[models.Board](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to fetch boards")
	}

	return boards, nil
}

func FetchBoard(ctx context.Context, dbConn db.ConnOrTx, boardID int, q BoardsQuery) (*models.Board, error) {
	q.BoardIDs = []int{boardID}
	boards, err := FetchBoards(ctx, dbConn, q)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, db.NotFound
	}

	return boards[0], nil
}

/*
Creates a new board. Admin only. Board names are unique case-insensitively
among all non-erased boards, soft-deleted ones included; a collision fails
with ErrConflict.
*/
func CreateBoard(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, name, description string) (*models.Board, error) {
	if !perms.Can(actor, perms.CreateBoard, 0) {
		return nil, ErrForbidden
	}
	if err := validateLength("name", name, config.NameMin, config.NameMax); err != nil {
		return nil, err
	}
	if err := validateLength("description", description, config.DescMin, config.DescMax); err != nil {
		return nil, err
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	taken, err := db.QueryOneScalar[bool](ctx, tx,
		`SELECT EXISTS (SELECT 1 FROM board WHERE LOWER(name) = LOWER($1))`,
		name,
	)
	if err != nil {
		return nil, oops.New(err, "failed to check for duplicate board names")
	}
	if taken {
		return nil, conflictErr("board name")
	}

	board, err := db.QueryOne[models.Board](ctx, tx,
		`
		INSERT INTO board (name, description, deleted)
		VALUES ($1, $2, FALSE)
		RETURNING $columns
		`,
		name, description,
	)
	if err != nil {
		return nil, oops.New(err, "failed to insert board")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit new board")
	}

	return board, nil
}

/*
Edits a board's name and description. Admin only. Editing a soft-deleted or
missing board fails with db.NotFound. An edit that changes nothing is a
no-op and reports updated = false.
*/
func EditBoard(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, boardID int, name, description string) (updated bool, err error) {
	if !perms.Can(actor, perms.EditBoard, 0) {
		return false, ErrForbidden
	}
	if err := validateLength("name", name, config.NameMin, config.NameMax); err != nil {
		return false, err
	}
	if err := validateLength("description", description, config.DescMin, config.DescMax); err != nil {
		return false, err
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return false, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	board, err := FetchBoard(ctx, tx, boardID, BoardsQuery{IncludeDeleted: true})
	if err != nil {
		return false, err
	}
	if err := checkEditable(board.Deleted); err != nil {
		return false, err
	}

	if !boardEditChanges(board, name, description) {
		return false, nil
	}

	taken, err := db.QueryOneScalar[bool](ctx, tx,
		`SELECT EXISTS (SELECT 1 FROM board WHERE LOWER(name) = LOWER($1) AND id != $2)`,
		name, boardID,
	)
	if err != nil {
		return false, oops.New(err, "failed to check for duplicate board names")
	}
	if taken {
		return false, conflictErr("board name")
	}

	_, err = tx.Exec(ctx,
		`UPDATE board SET name = $1, description = $2 WHERE id = $3`,
		name, description, boardID,
	)
	if err != nil {
		return false, oops.New(err, "failed to update board")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return false, oops.New(err, "failed to commit board edit")
	}

	return true, nil
}

// Hides a board from all default listings. Admin only. Idempotent.
func SoftDeleteBoard(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, boardID int) error {
	if !perms.Can(actor, perms.SoftDeleteBoard, 0) {
		return ErrForbidden
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	board, err := FetchBoard(ctx, tx, boardID, BoardsQuery{IncludeDeleted: true})
	if err != nil {
		return err
	}
	if !softDeleteChanges(board.Deleted) {
		return nil
	}

	_, err = tx.Exec(ctx, `UPDATE board SET deleted = TRUE WHERE id = $1`, boardID)
	if err != nil {
		return oops.New(err, "failed to soft delete board")
	}

	return tx.Commit(ctx)
}

// Restores a soft-deleted board. Admin only.
func ReviveBoard(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, boardID int) error {
	if !perms.Can(actor, perms.ReviveBoard, 0) {
		return ErrForbidden
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	board, err := FetchBoard(ctx, tx, boardID, BoardsQuery{IncludeDeleted: true})
	if err != nil {
		return err
	}
	if !reviveChanges(board.Deleted) {
		return nil
	}

	_, err = tx.Exec(ctx, `UPDATE board SET deleted = FALSE WHERE id = $1`, boardID)
	if err != nil {
		return oops.New(err, "failed to revive board")
	}

	return tx.Commit(ctx)
}

/*
Permanently removes a board and everything on it. Admin only, irreversible.
The cascade is explicit and runs in one transaction, deleting in dependency
order (comments, then posts, then the board) so a crash can never leave
orphaned content behind.
*/
func EraseBoard(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, boardID int) error {
	if !perms.Can(actor, perms.EraseBoard, 0) {
		return ErrForbidden
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	_, err = FetchBoard(ctx, tx, boardID, BoardsQuery{IncludeDeleted: true})
	if err != nil {
		return err
	}

	for _, stmt := range eraseBoardStatements {
		_, err = tx.Exec(ctx, stmt, boardID)
		if err != nil {
			return oops.New(err, "failed to erase board content")
		}
	}

	return tx.Commit(ctx)
}

// The erase statements run in dependency order, comments before posts before
// the board itself; the schema has no ON DELETE CASCADE.
var eraseBoardStatements = []string{
	`
	DELETE FROM comment
	WHERE post_id IN (SELECT id FROM post WHERE board_id = $1)
	`,
	`DELETE FROM post WHERE board_id = $1`,
	`DELETE FROM board WHERE id = $1`,
}
