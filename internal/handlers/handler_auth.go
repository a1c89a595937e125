package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes. loginLimit guards
// the password endpoint only.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade, loginLimit gin.HandlerFunc) *gin.RouterGroup {
	h := newAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", loginLimit, h.login)
		auth.POST("/register", h.register)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
	return auth
}

// deviceInfo captures the client metadata stored with a new session.
func deviceInfo(c *gin.Context) domain.DeviceInfo {
	info := domain.DeviceInfo{"ip": c.ClientIP()}
	if ua := c.Request.UserAgent(); ua != "" {
		info["user_agent"] = ua
	}
	if name := c.GetHeader("X-Device-Name"); name != "" {
		info["device_name"] = name
	}
	return info
}

// login godoc
// @Summary User login
// @Description OAuth2 password grant. username carries the email address.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Email"
// @Param password formData string true "Password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} ErrorResponse "Incorrect email or password"
// @Failure 422 {object} ValidationErrorResponse
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		handleBindError(c, err)
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), form.Username, form.Password, deviceInfo(c))
	if err != nil {
		handleServiceError(c, err, "Login")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", tokens.User.ID))
	c.JSON(http.StatusOK, dto.ToTokenResponse(tokens))
}

// register godoc
// @Summary Register new user
// @Description Creates a new email/password account.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.CreateUserRequest true "User Registration Info"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "The user with this email already exists in the system."
// @Failure 422 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err, "Registration")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", user.ID))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// refresh godoc
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a new token pair. The presented token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken, deviceInfo(c))
	if err != nil {
		handleServiceError(c, err, "Token refresh")
		return
	}
	c.JSON(http.StatusOK, dto.ToTokenResponse(tokens))
}

// logout godoc
// @Summary Logout
// @Description Revokes the session behind a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ValidationErrorResponse
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		handleServiceError(c, err, "Logout")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
