package router

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/ziplai/ziplai/internal/auth"
	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/handler"
	"github.com/ziplai/ziplai/internal/repository"
)

// BearerAuth validates the Authorization header, resolves the user behind the
// token, and attaches it to the request context. Every failure mode answers
// with the same 401 so callers cannot probe which emails exist.
func BearerAuth(jwtService *auth.JWTService, users repository.UserRepository) echo.MiddlewareFunc {
	unauthorized := apperrors.ErrorResponse{
		Error: "invalid or expired token",
		Code:  "UNAUTHORIZED",
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, unauthorized)
			}
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" {
				return c.JSON(http.StatusUnauthorized, unauthorized)
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, unauthorized)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, unauthorized)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, unauthorized)
			}

			c.Set(handler.UserContextKey, user)
			return next(c)
		}
	}
}

// PerUserRateLimit throttles a route per authenticated user with a token
// bucket of r events per second and the given burst.
func PerUserRateLimit(r rate.Limit, burst int) echo.MiddlewareFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[uuid.UUID]*rate.Limiter)
	)

	limiterFor := func(id uuid.UUID) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[id]
		if !ok {
			l = rate.NewLimiter(r, burst)
			limiters[id] = l
		}
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := handler.CurrentUser(c)
			if user == nil {
				return next(c)
			}
			if !limiterFor(user.ID).Allow() {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrRateLimited)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}
