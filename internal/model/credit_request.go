package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Credit request statuses. Webhook-driven rows carry whatever status the
// gateway reports on the transaction.
const CreditRequestStatusPending = "pending"

// CreditRequest is an append-only ledger-event audit row. TransactionID is
// unique so a replayed gateway event cannot grant credits twice.
type CreditRequest struct {
	ID            uuid.UUID              `json:"id" gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID              `json:"user_id" gorm:"type:char(36);not null;index"`
	TransactionID string                 `json:"transaction_id" gorm:"size:200;not null;uniqueIndex"`
	CustomerID    string                 `json:"customer_id" gorm:"size:200;not null"`
	Amount        decimal.Decimal        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Status        string                 `json:"status" gorm:"size:50;not null"`
	Metadata      map[string]interface{} `json:"metadata,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time              `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (c *CreditRequest) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
