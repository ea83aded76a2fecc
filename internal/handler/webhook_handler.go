package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ziplai/ziplai/internal/payments"
	"github.com/ziplai/ziplai/internal/service"
)

// WebhookHandler receives payment gateway notifications.
type WebhookHandler struct {
	verifier      payments.WebhookVerifier
	creditService service.CreditService
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(verifier payments.WebhookVerifier, creditService service.CreditService) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, creditService: creditService}
}

// Paddle handles POST /api/paddle/webhooks. It always acknowledges with 200
// once the request is received: the gateway retries on non-200, and a local
// bug must never leave it retrying forever. Failures are logged, not
// surfaced.
func (h *WebhookHandler) Paddle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		log.Printf("paddle webhook: read body: %v", err)
		return c.NoContent(http.StatusOK)
	}

	event, err := h.verifier.Unmarshal(body, c.Request().Header.Get("Paddle-Signature"))
	if err != nil {
		log.Printf("paddle webhook: verification failed: %v", err)
		return c.NoContent(http.StatusOK)
	}

	if err := h.creditService.ProcessWebhookEvent(c.Request().Context(), event); err != nil {
		log.Printf("paddle webhook: processing failed: %v", err)
	}
	return c.NoContent(http.StatusOK)
}
