package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// ErrGoogleOAuthDisabled is returned when Google client credentials are not configured.
var ErrGoogleOAuthDisabled = errors.New("google sign-in is not configured")

// CodeExchanger trades an authorization code for an OAuth2 token.
type CodeExchanger interface {
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
}

// IDTokenValidator verifies a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// googleOAuthService implements the GoogleOAuthSvcFacade.
type googleOAuthService struct {
	BaseService
	clientID  string
	exchanger CodeExchanger
	validate  IDTokenValidator
}

// NewGoogleOAuthService creates a new instance of googleOAuthService backed by Google's endpoints.
func NewGoogleOAuthService(cfg *config.Config) portssvc.GoogleOAuthSvcFacade {
	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
	return NewGoogleOAuthServiceWith(cfg.GoogleClientID, cfg.GoogleClientSecret != "", oauthCfg, idtoken.Validate)
}

// NewGoogleOAuthServiceWith wires explicit collaborators. hasSecret=false disables the service.
func NewGoogleOAuthServiceWith(clientID string, hasSecret bool, exchanger CodeExchanger, validate IDTokenValidator) portssvc.GoogleOAuthSvcFacade {
	if !hasSecret {
		clientID = ""
	}
	return &googleOAuthService{clientID: clientID, exchanger: exchanger, validate: validate}
}

func (s *googleOAuthService) Enabled() bool {
	return s.clientID != ""
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthService) GetGoogleLoginURL(state string) string {
	return s.exchanger.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// ExchangeCode exchanges the code, then validates the returned ID token against our client ID.
func (s *googleOAuthService) ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error) {
	if !s.Enabled() {
		return nil, ErrGoogleOAuthDisabled
	}

	token, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("google token response did not include an id_token")
	}

	payload, err := s.validate(ctx, rawIDToken, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	identity := &domain.GoogleIdentity{Subject: payload.Subject}
	identity.Email, _ = payload.Claims["email"].(string)
	identity.Name, _ = payload.Claims["name"].(string)
	identity.Picture, _ = payload.Claims["picture"].(string)
	switch v := payload.Claims["email_verified"].(type) {
	case bool:
		identity.EmailVerified = v
	case string:
		identity.EmailVerified = v == "true"
	}

	return identity, nil
}
