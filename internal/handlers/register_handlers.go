package handlers

import (
	"github.com/Tayyab-Hussayn/Web-Content-writer/cmd/docs"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/middleware"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	registerValidatorTagNames()

	r.GET("/", getHome)
	r.GET("/health", getHealth)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		return err
	}

	api := r.Group(cfg.APIV1Str)

	// Public authentication routes
	auth := registerAuthRoutes(api, services.Auth, middleware.RateLimit(loginLimiter))
	registerGoogleOAuthRoutes(auth, services.GoogleOAuth, services.Auth)

	setupAPIV1Routes(api, cfg, services)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the authenticated part of the API
func setupAPIV1Routes(
	api *gin.RouterGroup,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	protected := api.Group("", middleware.AuthMiddleware(services.Auth))

	registerUserRoutes(protected, services.User)
	registerGenerationRoutes(protected, services.Generation, cfg.MaxUploadBytes)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = cfg.APIV1Str
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
