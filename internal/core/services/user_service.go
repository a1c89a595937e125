package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
)

// sessionRevoker is the part of the auth service the user service needs.
type sessionRevoker interface {
	LogoutAll(ctx context.Context, userID string) (int64, error)
}

type UserService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	hasher   utils.PasswordHasher
	sessions sessionRevoker
	now      Clock
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func NewUserService(userRepo portsrepo.UserRepositoryFacade, hasher utils.PasswordHasher, sessions sessionRevoker, now Clock) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{userRepo: userRepo, hasher: hasher, sessions: sessions, now: now}
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email in service: %w", err)
	}
	return user, nil
}

// UpdateUser applies the non-nil fields of req. Nothing is written when no field changes.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}

	updated := false
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, apperrors.NewFieldError("full_name", "must not be blank")
		}
		if name != user.FullName {
			user.FullName = name
			updated = true
		}
	}
	if req.AvatarURL != nil && (user.AvatarURL == nil || *user.AvatarURL != *req.AvatarURL) {
		avatar := *req.AvatarURL
		user.AvatarURL = &avatar
		updated = true
	}
	if req.GlobalInstructions != nil && (user.GlobalInstructions == nil || *user.GlobalInstructions != *req.GlobalInstructions) {
		instructions := *req.GlobalInstructions
		user.GlobalInstructions = &instructions
		updated = true
	}

	passwordChanged := false
	if req.Password != nil {
		if user.AuthProvider != domain.AuthProviderEmail {
			return nil, apperrors.NewFieldError("password", "cannot be set for accounts signed in with "+string(user.AuthProvider))
		}
		digest, err := s.hasher.Hash(*req.Password)
		if err != nil {
			if errors.Is(err, utils.ErrEmptyPassword) {
				return nil, apperrors.NewFieldError("password", "field required")
			}
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = digest
		updated = true
		passwordChanged = true
	}

	if !updated {
		return user, nil
	}

	user.UpdatedAt = s.now().UTC()
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if passwordChanged && s.sessions != nil {
		if _, err := s.sessions.LogoutAll(ctx, userID); err != nil {
			s.LogError(ctx, err, "Failed to revoke sessions after password change", slog.String("user_id", userID))
		}
	}

	s.LogInfo(ctx, "User updated", slog.String("user_id", userID))
	return user, nil
}
