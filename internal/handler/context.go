package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ziplai/ziplai/internal/model"
)

// UserContextKey is where the auth middleware stashes the resolved user.
const UserContextKey = "user"

// CurrentUser returns the authenticated user attached by the auth
// middleware, or nil outside a secured route.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(UserContextKey).(*model.User)
	return user
}
