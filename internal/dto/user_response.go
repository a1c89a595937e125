package dto

import (
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
)

// UserResponse is the public projection of a user. It never carries credentials.
type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	AvatarURL        *string   `json:"avatar_url"`
	IsActive         bool      `json:"is_active"`
	AuthProvider     string    `json:"auth_provider"`
	SubscriptionTier string    `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		FullName:         user.FullName,
		AvatarURL:        user.AvatarURL,
		IsActive:         user.IsActive,
		AuthProvider:     string(user.AuthProvider),
		SubscriptionTier: string(user.SubscriptionTier),
		CreatedAt:        user.CreatedAt,
	}
}
