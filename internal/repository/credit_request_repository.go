package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ziplai/ziplai/internal/model"
)

// CreditRequestRepository defines credit audit row persistence. Rows are
// append-only. Create surfaces gorm.ErrDuplicatedKey for a replayed
// transaction id.
type CreditRequestRepository interface {
	Create(ctx context.Context, req *model.CreditRequest) error
}

type creditRequestRepository struct {
	db *gorm.DB
}

// NewCreditRequestRepository creates a new credit request repository.
func NewCreditRequestRepository(db *gorm.DB) CreditRequestRepository {
	return &creditRequestRepository{db: db}
}

func (r *creditRequestRepository) Create(ctx context.Context, req *model.CreditRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}
