package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/service"
)

// CreditHandler handles manual credit request submissions.
type CreditHandler struct {
	creditService service.CreditService
}

// NewCreditHandler creates a new credit handler.
func NewCreditHandler(creditService service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// AddCreditRequest is a manual top-up submission.
type AddCreditRequest struct {
	TransactionID string  `json:"transaction_id" validate:"required,max=200"`
	CustomerID    string  `json:"customer_id" validate:"required,max=200"`
	Amount        float64 `json:"amount" validate:"required,gte=1,lte=100"`
}

// Add handles POST /api/add/credits/request. It only records the audit row;
// credits move when the gateway webhook confirms the transaction.
func (h *CreditHandler) Add(c echo.Context) error {
	user := CurrentUser(c)

	var req AddCreditRequest
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

	err := h.creditService.LogTopUpRequest(
		c.Request().Context(),
		user.ID,
		req.TransactionID,
		req.CustomerID,
		decimal.NewFromFloat(req.Amount),
	)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Credit request logged"})
}
