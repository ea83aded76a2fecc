package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/service"
)

// AuthHandler handles signup, verification, and login endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// VerifyRequest is the combined signup/login request body.
type VerifyRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

// ResendRequest asks for the verification email to be re-sent.
type ResendRequest struct {
	ResendWord string `json:"resend_word" validate:"required,max=500"`
}

type userPayload struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Credits int    `json:"credits"`
}

// Verify handles POST /api/verify: signup for unknown emails, login for
// known ones.
func (h *AuthHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "please provide a valid email address and password",
			Code:  "VALIDATION_ERROR",
		})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	switch {
	case result.PendingVerification:
		return c.JSON(http.StatusOK, echo.Map{
			"message":                   "Email verification pending. Please verify your email.",
			"verification_request_sent": true,
			"resend_word":               result.ResendSecret,
		})
	case result.RequireVerification:
		return c.JSON(http.StatusOK, echo.Map{
			"message":              "Email verification sent",
			"require_verification": true,
			"resend_word":          result.ResendSecret,
		})
	default:
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Logged in",
			"token":   result.Token,
			"user": userPayload{
				ID:      result.User.ID.String(),
				Email:   result.User.Email,
				Credits: result.User.Credits,
			},
		})
	}
}

// VerifyEmail handles POST /api/auth/email/verification: consumes the link
// from the verification email and creates the account.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	email := c.QueryParam("email")
	token := c.QueryParam("token")
	if email == "" || token == "" || len(token) > 500 {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid verification link",
			Code:  "INVALID_LINK",
		})
	}

	user, jwt, err := h.authService.VerifyEmail(c.Request().Context(), email, token)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User created and logged in",
		"token":   jwt,
		"user": userPayload{
			ID:      user.ID.String(),
			Email:   user.Email,
			Credits: user.Credits,
		},
	})
}

// ResendVerification handles POST /api/auth/resend-verification.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req ResendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	err := h.authService.ResendVerification(c.Request().Context(), req.ResendWord)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		// Past the cap the client has to start a fresh signup.
		return c.JSON(httpErr.StatusCode, echo.Map{
			"error":      httpErr.Message,
			"code":       httpErr.Code,
			"submit_new": true,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Email verification sent"})
}

// ValidateToken handles POST /api/validate/token; reaching it through the
// auth middleware is the validation.
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Validation successful"})
}
