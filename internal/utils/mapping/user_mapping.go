package mapping

import (
	"database/sql"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		ID:                 d.ID,
		Email:              d.Email,
		PasswordHash:       sql.NullString{String: d.PasswordHash, Valid: d.PasswordHash != ""},
		FullName:           d.FullName,
		AvatarURL:          d.AvatarURL,
		AuthProvider:       string(d.AuthProvider),
		SubscriptionTier:   string(d.SubscriptionTier),
		IsActive:           d.IsActive,
		IsSuperuser:        d.IsSuperuser,
		GlobalInstructions: d.GlobalInstructions,
		StripeCustomerID:   d.StripeCustomerID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
		LastLogin:          d.LastLogin,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		ID:                 m.ID,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash.String,
		FullName:           m.FullName,
		AvatarURL:          m.AvatarURL,
		AuthProvider:       domain.AuthProvider(m.AuthProvider),
		SubscriptionTier:   domain.SubscriptionTier(m.SubscriptionTier),
		IsActive:           m.IsActive,
		IsSuperuser:        m.IsSuperuser,
		GlobalInstructions: m.GlobalInstructions,
		StripeCustomerID:   m.StripeCustomerID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		LastLogin:          m.LastLogin,
	}
}
