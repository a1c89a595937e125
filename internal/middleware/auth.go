package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// AuthenticateHeader is the challenge sent with every 401.
const AuthenticateHeader = "WWW-Authenticate"

// CredentialsErrorMessage is the only detail returned for authentication failures.
const CredentialsErrorMessage = "Could not validate credentials"

// AccessTokenResolver resolves a bearer access token to an active user.
type AccessTokenResolver interface {
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}

// AbortUnauthorized ends the request with a generic 401 and a Bearer challenge.
func AbortUnauthorized(c *gin.Context, message string) {
	c.Header(AuthenticateHeader, "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthMiddleware creates a Gin middleware handler that validates bearer access tokens
// and stores the resolved user in the request context.
func AuthMiddleware(resolver AccessTokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			AbortUnauthorized(c, "Not authenticated")
			return
		}

		tokenString, ok := BearerToken(authHeader)
		if !ok {
			logger.Debug("Authorization header format invalid")
			AbortUnauthorized(c, "Not authenticated")
			return
		}

		user, err := resolver.CurrentUser(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Access token rejected", slog.String("error", err.Error()))
			AbortUnauthorized(c, CredentialsErrorMessage)
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.ID))
		ctx := WithLogger(WithUser(c.Request.Context(), user), enrichedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(userIDKey), user.ID)
		c.Set(string(userKey), user)

		c.Next()
	}
}
