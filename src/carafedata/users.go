package carafedata

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/carafeforum/carafe/src/auth"
	"github.com/carafeforum/carafe/src/config"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/models"
	"github.com/carafeforum/carafe/src/oops"
)

func FetchUser(ctx context.Context, dbConn db.ConnOrTx, userID int) (*models.User, error) {
	user, err := db.QueryOne[models.User](ctx, dbConn,
		`SELECT $columns FROM board_user WHERE id = $1`,
		userID,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, db.NotFound
		}
		return nil, oops.New(err, "failed to fetch user")
	}

	return user, nil
}

func FetchUserByUsername(ctx context.Context, dbConn db.ConnOrTx, username string) (*models.User, error) {
	user, err := db.QueryOne[models.User](ctx, dbConn,
		`SELECT $columns FROM board_user WHERE LOWER(username) = LOWER($1)`,
		username,
	)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return nil, db.NotFound
		}
		return nil, oops.New(err, "failed to fetch user by username")
	}

	return user, nil
}

/*
Registers a new user. Usernames and emails are stored lowercased and are
unique case-insensitively across all users; a collision fails with
ErrConflict and changes nothing.
*/
func CreateUser(ctx context.Context, dbConn db.ConnOrTx, username, email, password string) (*models.User, error) {
	if err := validateLength("username", username, config.UsernameMin, config.UsernameMax); err != nil {
		return nil, err
	}
	if err := validateLength("email", email, config.EmailMin, config.EmailMax); err != nil {
		return nil, err
	}
	if err := validateLength("password", password, config.TextMin, config.TextMax); err != nil {
		return nil, err
	}

	username = strings.ToLower(username)
	email = strings.ToLower(email)

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	taken, err := db.QueryOneScalar[bool](ctx, tx,
		`
		SELECT EXISTS (
			SELECT 1 FROM board_user
			WHERE LOWER(username) = $1 OR LOWER(email) = $2
		)
		`,
		username, email,
	)
	if err != nil {
		return nil, oops.New(err, "failed to check for existing users")
	}
	if taken {
		return nil, conflictErr("username or email")
	}

	hashed := auth.HashPassword(password)

	user, err := db.QueryOne[models.User](ctx, tx,
		`
		INSERT INTO board_user (username, email, password, is_admin, date_joined)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING $columns
		`,
		username, email, hashed.String(), time.Now(),
	)
	if err != nil {
		return nil, oops.New(err, "failed to insert user")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit new user")
	}

	return user, nil
}

func TouchLastLogin(ctx context.Context, dbConn db.ConnOrTx, userID int) error {
	_, err := dbConn.Exec(ctx,
		`UPDATE board_user SET last_login = $1 WHERE id = $2`,
		time.Now(), userID,
	)
	if err != nil {
		return oops.New(err, "failed to update last login")
	}

	return nil
}
