package handlers

import (
	"log/slog"

	portssvc "github.com/SscSPs/gl_posting_engine/internal/core/ports/services"
	"github.com/SscSPs/gl_posting_engine/internal/dto"
	"github.com/SscSPs/gl_posting_engine/internal/middleware"
	"github.com/SscSPs/gl_posting_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	RegisterBindingValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return setupAPIV1Routes(r, cfg, services)
}

// RegisterBindingValidations teaches gin's validator about decimal amounts.
func RegisterBindingValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		dto.RegisterValidations(v)
		return
	}
	slog.Warn("Gin validator engine is not go-playground/validator; decimal rules are not registered")
}

// setupAPIV1Routes configures the rate-limited /api/v1 group.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1", middleware.RateLimit(limiter))
	RegisterGLRoutes(v1, services.GL, cfg.PostingTimeout)
	return nil
}
