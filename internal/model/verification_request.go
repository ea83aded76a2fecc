package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification request statuses.
const (
	VerificationStatusUnverified = "unverified"
	VerificationStatusVerified   = "verified"
)

// MaxVerificationResends caps how many times a verification email may be
// re-sent before the request is discarded.
const MaxVerificationResends = 5

// VerificationRequest links an unconfirmed email and password hash to a
// single-use verification token. At most one unverified request exists per
// email at a time, enforced by lookup-before-create in the auth service.
type VerificationRequest struct {
	ID                uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email             string    `gorm:"size:255;not null;index"`
	PasswordHash      string    `gorm:"size:255;not null"`
	Link              string    `gorm:"size:512;not null"`
	VerificationToken string    `gorm:"size:255;not null"`
	ResendSecret      string    `gorm:"size:255;not null;index"`
	ResendCount       int       `gorm:"not null;default:0"`
	Status            string    `gorm:"size:20;not null;default:'unverified'"`
	CreatedAt         time.Time
}

// BeforeCreate sets UUID before creating the record.
func (v *VerificationRequest) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
