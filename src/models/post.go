package models

import "time"

type Post struct {
	ID int `db:"id"`

	BoardID  int `db:"board_id"`
	AuthorID int `db:"author_id"`

	Title string `db:"title"`
	Body  string `db:"body"`

	// DateEdited starts equal to Date and is bumped only by edits that
	// actually change the content.
	Date       time.Time `db:"date"`
	DateEdited time.Time `db:"date_edited"`

	Deleted bool `db:"deleted"`
}
