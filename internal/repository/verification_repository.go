package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziplai/ziplai/internal/model"
)

// VerificationRepository defines verification request persistence operations.
type VerificationRepository interface {
	Create(ctx context.Context, req *model.VerificationRequest) error
	FindUnverifiedByEmail(ctx context.Context, email string) (*model.VerificationRequest, error)
	FindUnverifiedByEmailAndToken(ctx context.Context, email, token string) (*model.VerificationRequest, error)
	FindUnverifiedByResendSecret(ctx context.Context, secret string) (*model.VerificationRequest, error)
	Update(ctx context.Context, req *model.VerificationRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository creates a new verification request repository.
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) Create(ctx context.Context, req *model.VerificationRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *verificationRepository) FindUnverifiedByEmail(ctx context.Context, email string) (*model.VerificationRequest, error) {
	var req model.VerificationRequest
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, model.VerificationStatusUnverified).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *verificationRepository) FindUnverifiedByEmailAndToken(ctx context.Context, email, token string) (*model.VerificationRequest, error) {
	var req model.VerificationRequest
	err := r.db.WithContext(ctx).
		Where("email = ? AND verification_token = ? AND status = ?", email, token, model.VerificationStatusUnverified).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *verificationRepository) FindUnverifiedByResendSecret(ctx context.Context, secret string) (*model.VerificationRequest, error) {
	var req model.VerificationRequest
	err := r.db.WithContext(ctx).
		Where("resend_secret = ? AND status = ?", secret, model.VerificationStatusUnverified).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *verificationRepository) Update(ctx context.Context, req *model.VerificationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *verificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.VerificationRequest{}, "id = ?", id).Error
}
