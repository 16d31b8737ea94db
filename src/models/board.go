package models

type Board struct {
	ID int `db:"id"`

	Name        string `db:"name"`
	Description string `db:"description"`

	Deleted bool `db:"deleted"`
}
