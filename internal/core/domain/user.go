package domain

import "time"

// AuthProvider is the origin of a user's credentials.
type AuthProvider string

const (
	AuthProviderEmail  AuthProvider = "email"
	AuthProviderGoogle AuthProvider = "google"
)

// SubscriptionTier is the billing plan a user is on.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// User represents a user of the application in the domain.
// PasswordHash is empty for accounts created through an external identity provider;
// such accounts never accept password login.
type User struct {
	ID               string           `json:"id"`
	Email            string           `json:"email"`
	PasswordHash     string           `json:"-"`
	FullName         string           `json:"full_name"`
	AvatarURL        *string          `json:"avatar_url,omitempty"`
	AuthProvider     AuthProvider     `json:"auth_provider"`
	SubscriptionTier SubscriptionTier `json:"subscription_tier"`
	IsActive         bool             `json:"is_active"`
	IsSuperuser      bool             `json:"is_superuser"`
	// GlobalInstructions are appended to every generation prompt.
	GlobalInstructions *string `json:"global_instructions,omitempty"`
	// StripeCustomerID is reserved for billing and never set by this service.
	StripeCustomerID *string `json:"-"`
	AuditFields
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// HasPassword reports whether the user can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// GoogleIdentity is the verified subset of a Google ID token used to sign a user in.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}
