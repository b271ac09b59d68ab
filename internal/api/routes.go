// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/xmlvalidator/backend/internal/config"
	"github.com/xmlvalidator/backend/internal/validator"
)

// Dependencies holds all handler dependencies.
type Dependencies struct {
	Service        *validator.Service
	Profile        *config.Profile
	MaxUploadBytes int64
	Version        string
}

// Handlers holds all handler instances.
type Handlers struct {
	Health HealthHandler
	Upload UploadHandler
}

// NewHandlers creates all handler instances.
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version),
		Upload: NewUploadHandler(deps.Service, deps.Profile, deps.MaxUploadBytes),
	}
}

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/health", handlers.Health.HandleHealth)
	e.POST("/upload", handlers.Upload.HandleUpload)
	e.POST("/upload/msgpack", handlers.Upload.HandleUploadMsgpack)
}

// SetupMiddleware configures the custom error handler.
func SetupMiddleware(e *echo.Echo) {
	e.HTTPErrorHandler = ErrorHandler
}
