package models

import "time"

type Comment struct {
	ID int `db:"id"`

	PostID   int `db:"post_id"`
	AuthorID int `db:"author_id"`

	Body string `db:"body"`

	Date       time.Time `db:"date"`
	DateEdited time.Time `db:"date_edited"`

	Deleted bool `db:"deleted"`
}
