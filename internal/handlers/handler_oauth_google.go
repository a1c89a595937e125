package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler handles Google sign-in. The frontend performs the redirect
// dance and posts the authorization code here.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	authService        portssvc.AuthSvcFacade
}

func newGoogleOAuthHandler(googleOAuthService portssvc.GoogleOAuthSvcFacade, authService portssvc.AuthSvcFacade) *googleOAuthHandler {
	return &googleOAuthHandler{googleOAuthService: googleOAuthService, authService: authService}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the auth group.
func registerGoogleOAuthRoutes(auth *gin.RouterGroup, googleOAuthService portssvc.GoogleOAuthSvcFacade, authService portssvc.AuthSvcFacade) {
	h := newGoogleOAuthHandler(googleOAuthService, authService)
	googleRoutes := auth.Group("/google")
	{
		googleRoutes.GET("/login-url", h.loginURL)
		googleRoutes.POST("/exchange-code", h.exchangeCode)
	}
}

// loginURL godoc
// @Summary Google consent URL
// @Description Returns the Google consent screen URL for the given state.
// @Tags oauth
// @Produce json
// @Param state query string true "Opaque CSRF state"
// @Success 200 {object} map[string]string
// @Failure 422 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/login-url [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	if !h.googleOAuthService.Enabled() {
		handleServiceError(c, apperrors.NewServiceUnavailableError("Google sign-in is not configured"), "Google login URL")
		return
	}
	state := c.Query("state")
	if state == "" {
		handleServiceError(c, apperrors.NewFieldError("state", "field required"), "Google login URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": h.googleOAuthService.GetGoogleLoginURL(state)})
}

// exchangeCode godoc
// @Summary Exchange authorization code for tokens
// @Description Exchanges a Google authorization code, validates the ID token and signs the user in,
// @Description creating the account on first use.
// @Tags oauth
// @Accept json
// @Produce json
// @Param body body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.GoogleLoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 400 {object} ErrorResponse "Email registered with a password"
// @Failure 422 {object} ValidationErrorResponse
// @Failure 503 {object} ErrorResponse "Google sign-in is not configured"
// @Failure 504 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	if !h.googleOAuthService.Enabled() {
		handleServiceError(c, apperrors.NewServiceUnavailableError("Google sign-in is not configured"), "Google exchange")
		return
	}

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	identity, err := h.googleOAuthService.ExchangeCode(ctx, req.Code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		handleServiceError(c, apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.", err), "Google exchange")
		return
	}

	tokens, err := h.authService.LoginWithGoogle(ctx, *identity, deviceInfo(c))
	if err != nil {
		handleServiceError(c, err, "Google sign-in")
		return
	}

	logger.Info("User signed in with Google", slog.String("user_id", tokens.User.ID))
	c.JSON(http.StatusOK, dto.GoogleLoginResponse{
		TokenResponse: dto.ToTokenResponse(tokens),
		User:          dto.ToUserResponse(tokens.User),
	})
}
