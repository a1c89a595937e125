package domain

import (
	"encoding/json"
	"time"
)

// DeviceInfo is free-form client metadata attached to a session. The store keeps it as-is.
type DeviceInfo map[string]any

// Value returns the JSON encoding of the device info, "{}" when empty.
func (d DeviceInfo) Value() ([]byte, error) {
	if len(d) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(d))
}

// Session is a refresh-token grant. Only the SHA-256 digest of the token is kept.
type Session struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	RefreshTokenHash string     `json:"-"`
	DeviceInfo       DeviceInfo `json:"device_info"`
	ExpiresAt        time.Time  `json:"expires_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// IsValidAt reports whether the session is still usable at now.
func (s *Session) IsValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// TokenTypeBearer is the token_type returned with every token pair.
const TokenTypeBearer = "bearer"

// AuthTokens is the result of a successful login or refresh.
type AuthTokens struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  *User
}
