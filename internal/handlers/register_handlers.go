package handlers

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/primex-app/primex_backend/cmd/docs"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/middleware"
	"github.com/primex-app/primex_backend/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	uploadsDir string,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", getHome)

	// Uploaded profile images are served without the API key so that the
	// stored profile URLs work directly in an <img> tag.
	r.Static(cfg.UploadBasePath, uploadsDir)

	// Everything under /api requires the shared API key.
	api := r.Group("/api", middleware.APIKeyAuth(cfg.APIKey))

	RegisterAuthRoutes(api, cfg.JWTSecret, services)
	RegisterUserRoutes(api, cfg.JWTSecret, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

var customValidatorsOnce sync.Once

// registerCustomValidators adds the "otp" binding rule used by the auth DTOs:
// exactly six ASCII digits.
func registerCustomValidators() {
	customValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("otp", func(fl validator.FieldLevel) bool {
			code := fl.Field().String()
			if len(code) != 6 {
				return false
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		})
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
