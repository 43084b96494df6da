package handlers

import (
	"github.com/SscSPs/tax_engagement_app/cmd/docs"
	portssvc "github.com/SscSPs/tax_engagement_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engagement_app/internal/middleware"
	"github.com/SscSPs/tax_engagement_app/internal/platform/config"
	"github.com/SscSPs/tax_engagement_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services, posthogClient)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Identity comes from the bearer token on every route.
// The viewer's time zone comes from the token's tz claim or a ?tz= override.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), middleware.ViewerLocation())

	RegisterPortalRoutes(v1, services)
	RegisterAdminRoutes(v1, services, posthogClient)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
