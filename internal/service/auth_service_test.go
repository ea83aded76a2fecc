package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ziplai/ziplai/internal/auth"
	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/model"
)

const testPassword = "Sup3rSecret!x@"

func newAuthService(
	userRepo *MockUserRepository,
	verifRepo *MockVerificationRepository,
	m *MockMailer,
	customers *MockCustomerCreator,
) AuthService {
	return NewAuthService(userRepo, verifRepo, auth.NewJWTService("test-secret"), m, customers, "app.example.com", 5)
}

func TestAuthService_Login_NewEmailStartsVerification(t *testing.T) {
	userRepo := new(MockUserRepository)
	verifRepo := new(MockVerificationRepository)
	m := new(MockMailer)
	customers := new(MockCustomerCreator)

	verifRepo.On("FindUnverifiedByEmail", mock.Anything, "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByEmail", mock.Anything, "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	verifRepo.On("Create", mock.Anything, mock.MatchedBy(func(req *model.VerificationRequest) bool {
		return req.Email == "new@example.com" &&
			req.Status == model.VerificationStatusUnverified &&
			strings.HasPrefix(req.ResendSecret, "new@example.com_") &&
			strings.Contains(req.Link, "app.example.com/email/verification")
	})).Return(nil)
	m.On("SendVerification", mock.Anything, "new@example.com", mock.Anything).Return(nil)

	svc := newAuthService(userRepo, verifRepo, m, customers)
	result, err := svc.Login(context.Background(), "  New@Example.COM ", testPassword)

	assert.NoError(t, err)
	assert.True(t, result.RequireVerification)
	assert.NotEmpty(t, result.ResendSecret)
	assert.Empty(t, result.Token)
	verifRepo.AssertExpectations(t)
	m.AssertExpectations(t)
}

func TestAuthService_Login_PendingVerification(t *testing.T) {
	userRepo := new(MockUserRepository)
	verifRepo := new(MockVerificationRepository)

	pending := &model.VerificationRequest{
		Email:        "pending@example.com",
		ResendSecret: "pending@example.com_abc",
		Status:       model.VerificationStatusUnverified,
	}
	verifRepo.On("FindUnverifiedByEmail", mock.Anything, "pending@example.com").
		Return(pending, nil)

	svc := newAuthService(userRepo, verifRepo, new(MockMailer), new(MockCustomerCreator))
	result, err := svc.Login(context.Background(), "pending@example.com", testPassword)

	assert.NoError(t, err)
	assert.True(t, result.PendingVerification)
	assert.Equal(t, "pending@example.com_abc", result.ResendSecret)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login_ExistingUser(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	userID := uuid.New()

	t.Run("wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		verifRepo := new(MockVerificationRepository)
		verifRepo.On("FindUnverifiedByEmail", mock.Anything, "user@example.com").
			Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&model.User{ID: userID, Email: "user@example.com", PasswordHash: string(hash)}, nil)

		svc := newAuthService(userRepo, verifRepo, new(MockMailer), new(MockCustomerCreator))
		_, err := svc.Login(context.Background(), "user@example.com", "Wr0ngPass!w")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("fresh token issued and stored", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		verifRepo := new(MockVerificationRepository)
		verifRepo.On("FindUnverifiedByEmail", mock.Anything, "user@example.com").
			Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&model.User{ID: userID, Email: "user@example.com", PasswordHash: string(hash)}, nil)
		userRepo.On("UpdateToken", mock.Anything, userID, mock.Anything).Return(nil)

		svc := newAuthService(userRepo, verifRepo, new(MockMailer), new(MockCustomerCreator))
		result, err := svc.Login(context.Background(), "user@example.com", testPassword)

		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		userRepo.AssertExpectations(t)
	})

	t.Run("valid stored token is reused", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret")
		stored, _ := jwtService.GenerateToken(userID.String(), "user@example.com")

		userRepo := new(MockUserRepository)
		verifRepo := new(MockVerificationRepository)
		verifRepo.On("FindUnverifiedByEmail", mock.Anything, "user@example.com").
			Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("FindByEmail", mock.Anything, "user@example.com").
			Return(&model.User{ID: userID, Email: "user@example.com", PasswordHash: string(hash), Token: &stored}, nil)

		svc := NewAuthService(userRepo, verifRepo, jwtService, new(MockMailer), new(MockCustomerCreator), "app.example.com", 5)
		result, err := svc.Login(context.Background(), "user@example.com", testPassword)

		assert.NoError(t, err)
		assert.Equal(t, stored, result.Token)
		userRepo.AssertNotCalled(t, "UpdateToken", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login_WeakPassword(t *testing.T) {
	svc := newAuthService(new(MockUserRepository), new(MockVerificationRepository), new(MockMailer), new(MockCustomerCreator))

	for _, password := range []string{
		"Sh0rt!A",
		"alllowercase1!",
		"ALLUPPERCASE1!",
		"NoDigitsHere!",
		"NoSpecial123A",
	} {
		_, err := svc.Login(context.Background(), "user@example.com", password)
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "password %q", password)
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	t.Run("unknown link", func(t *testing.T) {
		verifRepo := new(MockVerificationRepository)
		verifRepo.On("FindUnverifiedByEmailAndToken", mock.Anything, "user@example.com", "tok").
			Return(nil, gorm.ErrRecordNotFound)

		svc := newAuthService(new(MockUserRepository), verifRepo, new(MockMailer), new(MockCustomerCreator))
		_, _, err := svc.VerifyEmail(context.Background(), "user@example.com", "tok")

		assert.ErrorIs(t, err, apperrors.ErrVerificationNotFound)
	})

	t.Run("creates the user with signup credits and a gateway customer", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		verifRepo := new(MockVerificationRepository)
		customers := new(MockCustomerCreator)

		req := &model.VerificationRequest{
			ID:           uuid.New(),
			Email:        "user@example.com",
			PasswordHash: "hashed",
			Status:       model.VerificationStatusUnverified,
		}
		verifRepo.On("FindUnverifiedByEmailAndToken", mock.Anything, "user@example.com", "tok").
			Return(req, nil)
		verifRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.VerificationRequest) bool {
			return r.Status == model.VerificationStatusVerified
		})).Return(nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "user@example.com" && u.PasswordHash == "hashed"
		})).Return(nil)
		customers.On("CreateCustomer", mock.Anything, "user@example.com").Return("ctm_99", nil)
		userRepo.On("ActivateAccount", mock.Anything, mock.Anything, mock.Anything, 5, "ctm_99").Return(nil)

		svc := newAuthService(userRepo, verifRepo, new(MockMailer), customers)
		user, token, err := svc.VerifyEmail(context.Background(), "User@Example.com", "tok")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, 5, user.Credits)
		assert.Equal(t, "ctm_99", *user.PaddleCustomerID)
		userRepo.AssertExpectations(t)
		verifRepo.AssertExpectations(t)
		customers.AssertExpectations(t)
	})
}

func TestAuthService_ResendVerification(t *testing.T) {
	t.Run("unknown secret", func(t *testing.T) {
		verifRepo := new(MockVerificationRepository)
		verifRepo.On("FindUnverifiedByResendSecret", mock.Anything, "nope").
			Return(nil, gorm.ErrRecordNotFound)

		svc := newAuthService(new(MockUserRepository), verifRepo, new(MockMailer), new(MockCustomerCreator))
		err := svc.ResendVerification(context.Background(), "nope")

		assert.ErrorIs(t, err, apperrors.ErrInvalidResendRequest)
	})

	t.Run("resend increments the counter and sends", func(t *testing.T) {
		verifRepo := new(MockVerificationRepository)
		m := new(MockMailer)

		req := &model.VerificationRequest{
			ID:          uuid.New(),
			Email:       "user@example.com",
			Link:        "https://app.example.com/email/verification?email=user%40example.com&token=tok",
			ResendCount: 2,
			CreatedAt:   time.Now(),
		}
		verifRepo.On("FindUnverifiedByResendSecret", mock.Anything, "secret").Return(req, nil)
		verifRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *model.VerificationRequest) bool {
			return r.ResendCount == 3
		})).Return(nil)
		m.On("SendVerification", mock.Anything, "user@example.com", req.Link).Return(nil)

		svc := newAuthService(new(MockUserRepository), verifRepo, m, new(MockCustomerCreator))
		err := svc.ResendVerification(context.Background(), "secret")

		assert.NoError(t, err)
		verifRepo.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("cap reached deletes the request", func(t *testing.T) {
		verifRepo := new(MockVerificationRepository)

		req := &model.VerificationRequest{
			ID:          uuid.New(),
			Email:       "user@example.com",
			ResendCount: model.MaxVerificationResends,
			CreatedAt:   time.Now(),
		}
		verifRepo.On("FindUnverifiedByResendSecret", mock.Anything, "secret").Return(req, nil)
		verifRepo.On("Delete", mock.Anything, req.ID).Return(nil)

		svc := newAuthService(new(MockUserRepository), verifRepo, new(MockMailer), new(MockCustomerCreator))
		err := svc.ResendVerification(context.Background(), "secret")

		assert.ErrorIs(t, err, apperrors.ErrResendLimit)
		verifRepo.AssertExpectations(t)
	})

	t.Run("stale request deletes even under the cap", func(t *testing.T) {
		verifRepo := new(MockVerificationRepository)

		req := &model.VerificationRequest{
			ID:          uuid.New(),
			Email:       "user@example.com",
			ResendCount: 1,
			CreatedAt:   time.Now().Add(-8 * 24 * time.Hour),
		}
		verifRepo.On("FindUnverifiedByResendSecret", mock.Anything, "secret").Return(req, nil)
		verifRepo.On("Delete", mock.Anything, req.ID).Return(nil)

		svc := newAuthService(new(MockUserRepository), verifRepo, new(MockMailer), new(MockCustomerCreator))
		err := svc.ResendVerification(context.Background(), "secret")

		assert.ErrorIs(t, err, apperrors.ErrResendLimit)
		verifRepo.AssertExpectations(t)
	})
}
