package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziplai/ziplai/internal/model"
)

// ErrBalanceExhausted is returned by DebitCredits when the conditional update
// matched no row, i.e. the balance was below the requested amount.
var ErrBalanceExhausted = errors.New("credit balance exhausted")

// UserRepository defines user persistence operations. Credit mutations are
// conditional single-statement updates resolved server-side; callers must
// never read-modify-write the balance.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPaddleCustomerID(ctx context.Context, customerID string) (*model.User, error)
	UpdateToken(ctx context.Context, id uuid.UUID, token string) error
	ActivateAccount(ctx context.Context, id uuid.UUID, token string, credits int, paddleCustomerID string) error
	UpdateSavedResume(ctx context.Context, id uuid.UUID, file *model.ResumeFileMeta, text *string) error
	DebitCredits(ctx context.Context, id uuid.UUID, amount int) (int, error)
	AddCredits(ctx context.Context, id uuid.UUID, amount int) error
	Balance(ctx context.Context, id uuid.UUID) (int, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPaddleCustomerID finds a user by payment gateway customer id.
func (r *userRepository) FindByPaddleCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("paddle_customer_id = ?", customerID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateToken stores the user's current bearer token.
func (r *userRepository) UpdateToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("token", token).Error
}

// ActivateAccount applies the post-verification setup in one update: bearer
// token, signup credit grant, and the gateway customer id.
func (r *userRepository) ActivateAccount(ctx context.Context, id uuid.UUID, token string, credits int, paddleCustomerID string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"token":              token,
			"credits":            credits,
			"paddle_customer_id": paddleCustomerID,
		}).Error
}

// UpdateSavedResume overwrites the cached resume. Exactly one of file and
// text should be non-nil; the other column is cleared in the same update so
// the mutual-exclusivity invariant holds.
func (r *userRepository) UpdateSavedResume(ctx context.Context, id uuid.UUID, file *model.ResumeFileMeta, text *string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"saved_resume_file": file,
			"saved_resume_text": text,
		}).Error
}

// DebitCredits atomically decrements the balance when it covers amount and
// returns the new balance. ErrBalanceExhausted means no row matched: the
// balance was insufficient and nothing changed.
func (r *userRepository) DebitCredits(ctx context.Context, id uuid.UUID, amount int) (int, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND credits >= ?", id, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrBalanceExhausted
	}
	return r.Balance(ctx, id)
}

// AddCredits atomically increments the balance.
func (r *userRepository) AddCredits(ctx context.Context, id uuid.UUID, amount int) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}

// Balance reads the current credit balance.
func (r *userRepository) Balance(ctx context.Context, id uuid.UUID) (int, error) {
	var credits int
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Pluck("credits", &credits).Error
	return credits, err
}
