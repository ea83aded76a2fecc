package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ziplai/ziplai/internal/model"
)

// APILogRepository writes diagnostic rows. Nothing reads them back.
type APILogRepository interface {
	Create(ctx context.Context, entry *model.APILog) error
}

type apiLogRepository struct {
	db *gorm.DB
}

// NewAPILogRepository creates a new API log repository.
func NewAPILogRepository(db *gorm.DB) APILogRepository {
	return &apiLogRepository{db: db}
}

func (r *apiLogRepository) Create(ctx context.Context, entry *model.APILog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
