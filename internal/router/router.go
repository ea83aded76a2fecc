package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/ziplai/ziplai/internal/auth"
	"github.com/ziplai/ziplai/internal/handler"
	"github.com/ziplai/ziplai/internal/repository"
)

// CustomValidator wraps go-playground/validator for echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the given struct.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Generation *handler.GenerationHandler
	History    *handler.HistoryHandler
	Credit     *handler.CreditHandler
	Webhook    *handler.WebhookHandler
}

// Register wires middleware and routes onto the echo instance.
func Register(e *echo.Echo, h Handlers, jwtService *auth.JWTService, users repository.UserRepository) {
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	api := e.Group("/api")

	// Public routes.
	api.POST("/verify", h.Auth.Verify)
	api.POST("/auth/email/verification", h.Auth.VerifyEmail)
	api.POST("/auth/resend-verification", h.Auth.ResendVerification)
	api.POST("/paddle/webhooks", h.Webhook.Paddle)

	// Authenticated routes.
	secured := api.Group("", BearerAuth(jwtService, users))
	secured.POST("/validate/token", h.Auth.ValidateToken)
	secured.GET("/me", h.User.Me)
	secured.POST("/generate", h.Generation.Generate, PerUserRateLimit(rate.Limit(0.2), 3))
	secured.GET("/past-generations", h.History.List)
	secured.GET("/past-generation/:id", h.History.Get)
	secured.GET("/export/past-generation", h.History.Export)
	secured.POST("/add/credits/request", h.Credit.Add)
}
