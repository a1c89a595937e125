package models

import (
	"database/sql"
	"time"
)

// User is a row of the users table.
// PasswordHash is NULL for accounts created through Google sign-in.
type User struct {
	ID                 string         `db:"id"`
	Email              string         `db:"email"`
	PasswordHash       sql.NullString `db:"hashed_password"`
	FullName           string         `db:"full_name"`
	AvatarURL          *string        `db:"avatar_url"`
	AuthProvider       string         `db:"auth_provider"`
	SubscriptionTier   string         `db:"subscription_tier"`
	IsActive           bool           `db:"is_active"`
	IsSuperuser        bool           `db:"is_superuser"`
	GlobalInstructions *string        `db:"global_instructions"`
	StripeCustomerID   *string        `db:"stripe_customer_id"`
	AuditFields
	LastLogin *time.Time `db:"last_login"`
}
