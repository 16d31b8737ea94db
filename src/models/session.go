package models

import "time"

type Session struct {
	ID        string    `db:"id"`
	Username  string    `db:"username"`
	CSRFToken string    `db:"csrf_token"`
	ExpiresAt time.Time `db:"expires_at"`
}
