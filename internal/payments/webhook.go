package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// EventTransactionCompleted is the only event type the credit ledger acts on.
const EventTransactionCompleted = "transaction.completed"

// ErrInvalidSignature is returned when a webhook fails verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// TransactionPayment is one payment attempt on a transaction.
type TransactionPayment struct {
	Amount        string                 `json:"amount"`
	MethodDetails map[string]interface{} `json:"method_details"`
}

// TransactionData is the transaction portion of a webhook event.
type TransactionData struct {
	ID         string                   `json:"id"`
	Status     string                   `json:"status"`
	CustomerID string                   `json:"customer_id"`
	Items      []map[string]interface{} `json:"items"`
	Details    struct {
		Totals map[string]interface{} `json:"totals"`
	} `json:"details"`
	Payments []TransactionPayment `json:"payments"`
}

// WebhookEvent is a verified gateway notification.
type WebhookEvent struct {
	EventType  string          `json:"event_type"`
	OccurredAt string          `json:"occurred_at"`
	Data       TransactionData `json:"data"`
}

// WebhookVerifier yields a verified event from a raw webhook request, or an
// error. Handlers only ever see events that passed signature verification.
type WebhookVerifier interface {
	Unmarshal(rawBody []byte, signatureHeader string) (*WebhookEvent, error)
}

// webhookVerifier checks the Paddle-Signature header: "ts=<unix>;h1=<hex>",
// where h1 is HMAC-SHA256 over "<ts>:<rawBody>" with the endpoint secret.
type webhookVerifier struct {
	secret []byte
}

// NewWebhookVerifier creates a verifier bound to the endpoint secret.
func NewWebhookVerifier(secret string) WebhookVerifier {
	return &webhookVerifier{secret: []byte(secret)}
}

func (v *webhookVerifier) Unmarshal(rawBody []byte, signatureHeader string) (*WebhookEvent, error) {
	ts, h1, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(ts))
	mac.Write([]byte(":"))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(h1)) {
		return nil, ErrInvalidSignature
	}

	var event WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	return &event, nil
}

func parseSignatureHeader(header string) (ts, h1 string, err error) {
	for _, part := range strings.Split(header, ";") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "h1":
			h1 = v
		}
	}
	if ts == "" || h1 == "" {
		return "", "", ErrInvalidSignature
	}
	return ts, h1, nil
}
