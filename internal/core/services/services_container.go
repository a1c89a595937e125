package services

import (
	"fmt"

	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/platform/config"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The same clock and hasher are shared by every service.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, hasher utils.PasswordHasher, now Clock) (*portssvc.ServiceContainer, error) {
	tokenService, err := NewTokenService(cfg, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	authService, err := NewAuthService(repos.UserRepo, repos.SessionRepo, hasher, tokenService, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	generationService := NewGenerationService(
		repos.GenerationRepo,
		repos.UsageRepo,
		NewImageAnalysisService(NewAPIKeyPool(cfg.GeminiAPIKeys)),
		NewContentGenerationService(),
		now,
	)

	return &portssvc.ServiceContainer{
		User:         NewUserService(repos.UserRepo, hasher, authService, now),
		Auth:         authService,
		TokenService: tokenService,
		GoogleOAuth:  NewGoogleOAuthService(cfg),
		Generation:   generationService,
	}, nil
}
