package models

import "time"

// Session is a row of the sessions table. DeviceInfo holds raw jsonb.
type Session struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	RefreshTokenHash string    `db:"refresh_token_hash"`
	DeviceInfo       []byte    `db:"device_info"`
	ExpiresAt        time.Time `db:"expires_at"`
	CreatedAt        time.Time `db:"created_at"`
}
