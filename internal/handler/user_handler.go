package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// UserHandler handles the profile endpoint.
type UserHandler struct{}

// NewUserHandler creates a new user handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me handles GET /api/me. The saved resume text is only included when no
// file reference exists, mirroring the mutual exclusivity of the two fields.
func (h *UserHandler) Me(c echo.Context) error {
	user := CurrentUser(c)

	if c.QueryParam("only_credits") != "" {
		return c.JSON(http.StatusOK, echo.Map{"credits": user.Credits})
	}

	resp := echo.Map{
		"id":                  user.ID.String(),
		"gateway_customer_id": user.PaddleCustomerID,
		"email":               user.Email,
		"credits":             user.Credits,
		"saved_resume_file":   user.SavedResumeFile,
	}
	if user.SavedResumeFile == nil {
		resp["saved_resume_text"] = user.SavedResumeText
	}
	return c.JSON(http.StatusOK, resp)
}
