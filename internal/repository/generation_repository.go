package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziplai/ziplai/internal/model"
)

// HistoryListLimit caps the number of rows the list endpoint returns.
const HistoryListLimit = 200

// GenerationSummary is the listing projection of a past generation.
type GenerationSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     *string   `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// GenerationRepository defines past generation persistence operations. Rows
// are append-only; there is no update or delete.
type GenerationRepository interface {
	Create(ctx context.Context, gen *model.PastGeneration) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]GenerationSummary, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PastGeneration, error)
	AllByUser(ctx context.Context, userID uuid.UUID) ([]model.PastGeneration, error)
}

type generationRepository struct {
	db *gorm.DB
}

// NewGenerationRepository creates a new past generation repository.
func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(ctx context.Context, gen *model.PastGeneration) error {
	return r.db.WithContext(ctx).Create(gen).Error
}

// ListByUser returns summary rows, newest first, capped at HistoryListLimit.
func (r *generationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]GenerationSummary, error) {
	var summaries []GenerationSummary
	err := r.db.WithContext(ctx).Model(&model.PastGeneration{}).
		Select("id", "title", "created_at").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(HistoryListLimit).
		Find(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *generationRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PastGeneration, error) {
	var gen model.PastGeneration
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&gen).Error
	if err != nil {
		return nil, err
	}
	return &gen, nil
}

func (r *generationRepository) AllByUser(ctx context.Context, userID uuid.UUID) ([]model.PastGeneration, error) {
	var gens []model.PastGeneration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&gens).Error
	if err != nil {
		return nil, err
	}
	return gens, nil
}
