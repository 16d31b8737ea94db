package migrations

import (
	"context"
	"time"

	"github.com/carafeforum/carafe/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(Initial{})
}

type Initial struct{}

func (m Initial) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2024, 3, 4, 10, 15, 0, 0, time.UTC))
}

func (m Initial) Name() string {
	return "Initial"
}

func (m Initial) Description() string {
	return "Creates the core board tables"
}

func (m Initial) Up(ctx context.Context, tx pgx.Tx) error {
	// No ON DELETE CASCADE on purpose; erasing a board deletes its content
	// explicitly in dependency order so the operation is auditable.
	_, err := tx.Exec(ctx, `
		CREATE TABLE board_user (
			id SERIAL PRIMARY KEY,
			username VARCHAR(25) NOT NULL,
			email VARCHAR(35) NOT NULL,
			password VARCHAR(255) NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			date_joined TIMESTAMP WITH TIME ZONE NOT NULL,
			last_login TIMESTAMP WITH TIME ZONE
		);
		CREATE UNIQUE INDEX board_user_username_unique ON board_user (LOWER(username));
		CREATE UNIQUE INDEX board_user_email_unique ON board_user (LOWER(email));

		CREATE TABLE session (
			id VARCHAR(40) PRIMARY KEY,
			username VARCHAR(25) NOT NULL,
			csrf_token VARCHAR(40) NOT NULL,
			expires_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE TABLE board (
			id SERIAL PRIMARY KEY,
			name VARCHAR(80) NOT NULL,
			description VARCHAR(80) NOT NULL,
			deleted BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE UNIQUE INDEX board_name_unique ON board (LOWER(name));

		CREATE TABLE post (
			id SERIAL PRIMARY KEY,
			board_id INT NOT NULL REFERENCES board (id),
			author_id INT NOT NULL REFERENCES board_user (id),
			title VARCHAR(80) NOT NULL,
			body TEXT NOT NULL,
			date TIMESTAMP WITH TIME ZONE NOT NULL,
			date_edited TIMESTAMP WITH TIME ZONE NOT NULL,
			deleted BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX post_board_id ON post (board_id);

		CREATE TABLE comment (
			id SERIAL PRIMARY KEY,
			post_id INT NOT NULL REFERENCES post (id),
			author_id INT NOT NULL REFERENCES board_user (id),
			body TEXT NOT NULL,
			date TIMESTAMP WITH TIME ZONE NOT NULL,
			date_edited TIMESTAMP WITH TIME ZONE NOT NULL,
			deleted BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE INDEX comment_post_id_date ON comment (post_id, date);
	`)
	return err
}

func (m Initial) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `
		DROP TABLE comment;
		DROP TABLE post;
		DROP TABLE board;
		DROP TABLE session;
		DROP TABLE board_user;
	`)
	return err
}
