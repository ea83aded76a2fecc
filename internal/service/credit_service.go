package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/model"
	"github.com/ziplai/ziplai/internal/payments"
	"github.com/ziplai/ziplai/internal/repository"
)

// CreditService is the ledger: it owns every credit balance mutation and the
// invariant that balances never go negative.
type CreditService interface {
	TryDebit(ctx context.Context, userID uuid.UUID, amount int) (int, error)
	Credit(ctx context.Context, userID uuid.UUID, amount int) error
	Balance(ctx context.Context, userID uuid.UUID) (int, error)
	LogTopUpRequest(ctx context.Context, userID uuid.UUID, transactionID, customerID string, amount decimal.Decimal) error
	ProcessWebhookEvent(ctx context.Context, event *payments.WebhookEvent) error
}

type creditService struct {
	userRepo   repository.UserRepository
	creditRepo repository.CreditRequestRepository
	apiLogRepo repository.APILogRepository
	grant      int
}

// NewCreditService creates the credit ledger service. grant is the number of
// credits one completed gateway transaction buys.
func NewCreditService(
	userRepo repository.UserRepository,
	creditRepo repository.CreditRequestRepository,
	apiLogRepo repository.APILogRepository,
	grant int,
) CreditService {
	return &creditService{
		userRepo:   userRepo,
		creditRepo: creditRepo,
		apiLogRepo: apiLogRepo,
		grant:      grant,
	}
}

// TryDebit atomically decrements the balance and returns the new value.
// The check-and-decrement is one conditional UPDATE resolved by the
// database, so two simultaneous requests racing for the last credit cannot
// both succeed.
func (s *creditService) TryDebit(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	newBalance, err := s.userRepo.DebitCredits(ctx, userID, amount)
	if errors.Is(err, repository.ErrBalanceExhausted) {
		return 0, apperrors.ErrInsufficientCredits
	}
	if err != nil {
		return 0, fmt.Errorf("debit credits: %w", err)
	}
	return newBalance, nil
}

// Credit atomically increments the balance.
func (s *creditService) Credit(ctx context.Context, userID uuid.UUID, amount int) error {
	return s.userRepo.AddCredits(ctx, userID, amount)
}

// Balance reads the current balance.
func (s *creditService) Balance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.userRepo.Balance(ctx, userID)
}

// LogTopUpRequest appends a pending audit row for a manual top-up
// submission. No credits move here; the webhook does that.
func (s *creditService) LogTopUpRequest(ctx context.Context, userID uuid.UUID, transactionID, customerID string, amount decimal.Decimal) error {
	req := &model.CreditRequest{
		UserID:        userID,
		TransactionID: transactionID,
		CustomerID:    customerID,
		Amount:        amount,
		Status:        model.CreditRequestStatusPending,
	}
	if err := s.creditRepo.Create(ctx, req); err != nil {
		return fmt.Errorf("log credit request: %w", err)
	}
	return nil
}

// ProcessWebhookEvent applies a verified gateway event to the ledger. Only
// transaction.completed moves credits; everything else is a no-op. The audit
// row is inserted before the grant, and its unique transaction id makes a
// replayed event a no-op too.
func (s *creditService) ProcessWebhookEvent(ctx context.Context, event *payments.WebhookEvent) error {
	s.logEvent(ctx, event)

	if event.EventType != payments.EventTransactionCompleted {
		return nil
	}
	if event.Data.CustomerID == "" {
		log.Printf("webhook: transaction %s has no customer id, skipping", event.Data.ID)
		return nil
	}

	user, err := s.userRepo.FindByPaddleCustomerID(ctx, event.Data.CustomerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("webhook: no user for customer %s, skipping", event.Data.CustomerID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user by customer id: %w", err)
	}

	amount := decimal.Zero
	methodDetails := make([]map[string]interface{}, 0, len(event.Data.Payments))
	for _, p := range event.Data.Payments {
		methodDetails = append(methodDetails, p.MethodDetails)
	}
	if len(event.Data.Payments) > 0 {
		if parsed, perr := decimal.NewFromString(event.Data.Payments[0].Amount); perr == nil {
			amount = parsed
		}
	}

	req := &model.CreditRequest{
		UserID:        user.ID,
		TransactionID: event.Data.ID,
		CustomerID:    event.Data.CustomerID,
		Amount:        amount,
		Status:        event.Data.Status,
		Metadata: map[string]interface{}{
			"occurred_at":             event.OccurredAt,
			"transaction_id":          event.Data.ID,
			"transaction_status":      event.Data.Status,
			"customer_id":             event.Data.CustomerID,
			"items":                   event.Data.Items,
			"details_totals":          event.Data.Details.Totals,
			"payments_method_details": methodDetails,
		},
	}
	if err := s.creditRepo.Create(ctx, req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("webhook: transaction %s already credited, skipping", event.Data.ID)
			return nil
		}
		return fmt.Errorf("record credit request: %w", err)
	}

	if err := s.userRepo.AddCredits(ctx, user.ID, s.grant); err != nil {
		return fmt.Errorf("add credits: %w", err)
	}
	return nil
}

func (s *creditService) logEvent(ctx context.Context, event *payments.WebhookEvent) {
	if s.apiLogRepo == nil {
		return
	}
	entry := &model.APILog{Data: map[string]interface{}{
		"source":      "paddle_webhook",
		"event_type":  event.EventType,
		"occurred_at": event.OccurredAt,
		"transaction": event.Data.ID,
	}}
	if err := s.apiLogRepo.Create(ctx, entry); err != nil {
		log.Printf("webhook: api log write failed: %v", err)
	}
}
