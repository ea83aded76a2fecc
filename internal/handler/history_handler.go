package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/service"
)

// HistoryHandler handles past generation endpoints.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// List handles GET /api/past-generations.
func (h *HistoryHandler) List(c echo.Context) error {
	user := CurrentUser(c)

	summaries, err := h.historyService.List(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"past_generations": summaries})
}

// Get handles GET /api/past-generation/:id.
func (h *HistoryHandler) Get(c echo.Context) error {
	user := CurrentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid generation id",
			Code:  "INVALID_ID",
		})
	}

	gen, err := h.historyService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"past_generation": gen})
}

// Export handles GET /api/export/past-generation as a CSV download.
func (h *HistoryHandler) Export(c echo.Context) error {
	user := CurrentUser(c)

	data, err := h.historyService.ExportCSV(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="Ziplai_Export.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}
