package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ziplai/ziplai/internal/auth"
	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/mailer"
	"github.com/ziplai/ziplai/internal/model"
	"github.com/ziplai/ziplai/internal/payments"
	"github.com/ziplai/ziplai/internal/repository"
)

const bcryptCost = 10

// verificationMaxAge is how long a verification request stays resendable.
const verificationMaxAge = 7 * 24 * time.Hour

const passwordSpecialChars = "@$!%*?&"

// LoginResult is the outcome of a login attempt. Exactly one of the three
// shapes is populated: pending verification, fresh verification sent, or a
// logged-in user with a token.
type LoginResult struct {
	PendingVerification bool
	RequireVerification bool
	ResendSecret        string
	Token               string
	User                *model.User
}

// AuthService handles signup-with-verification and login.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	VerifyEmail(ctx context.Context, email, token string) (*model.User, string, error)
	ResendVerification(ctx context.Context, resendSecret string) error
}

type authService struct {
	userRepo      repository.UserRepository
	verifRepo     repository.VerificationRepository
	jwtService    *auth.JWTService
	mailer        mailer.Mailer
	customers     payments.CustomerCreator
	publicHost    string
	signupCredits int
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	verifRepo repository.VerificationRepository,
	jwtService *auth.JWTService,
	m mailer.Mailer,
	customers payments.CustomerCreator,
	publicHost string,
	signupCredits int,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		verifRepo:     verifRepo,
		jwtService:    jwtService,
		mailer:        m,
		customers:     customers,
		publicHost:    publicHost,
		signupCredits: signupCredits,
	}
}

// Login is both signup and login. An unknown email starts email
// verification; a known one is authenticated, reusing the stored token while
// it has more than two days of validity left.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	pending, err := s.verifRepo.FindUnverifiedByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check pending verification: %w", err)
	}
	if pending != nil {
		return &LoginResult{PendingVerification: true, ResendSecret: pending.ResendSecret}, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.startVerification(ctx, email, password)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Token != nil && !s.jwtService.ExpiringWithin(*user.Token, auth.TokenReuseWindow) {
		return &LoginResult{Token: *user.Token, User: user}, nil
	}

	token, err := s.jwtService.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.userRepo.UpdateToken(ctx, user.ID, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (s *authService) startVerification(ctx context.Context, email, password string) (*LoginResult, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	token := fmt.Sprintf("%s_%s", randomHex(16), randomHex(8))
	link := fmt.Sprintf("https://%s/email/verification?email=%s&token=%s",
		s.publicHost, url.QueryEscape(email), url.QueryEscape(token))
	resendSecret := fmt.Sprintf("%s_%s", email, randomHex(16))

	req := &model.VerificationRequest{
		Email:             email,
		PasswordHash:      string(passwordHash),
		Link:              link,
		VerificationToken: token,
		ResendSecret:      resendSecret,
		Status:            model.VerificationStatusUnverified,
	}
	if err := s.verifRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create verification request: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, email, link); err != nil {
		return nil, fmt.Errorf("send verification email: %w", err)
	}

	return &LoginResult{RequireVerification: true, ResendSecret: resendSecret}, nil
}

// VerifyEmail consumes a verification link: the request flips to verified, a
// User is created from it with the signup credit grant, and a gateway
// customer is registered so later payments can be matched back.
func (s *authService) VerifyEmail(ctx context.Context, email, token string) (*model.User, string, error) {
	email = normalizeEmail(email)

	req, err := s.verifRepo.FindUnverifiedByEmailAndToken(ctx, email, strings.TrimSpace(token))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.ErrVerificationNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("find verification request: %w", err)
	}

	req.Status = model.VerificationStatusVerified
	if err := s.verifRepo.Update(ctx, req); err != nil {
		return nil, "", fmt.Errorf("mark verified: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: req.PasswordHash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	jwt, err := s.jwtService.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	customerID, err := s.customers.CreateCustomer(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("create gateway customer: %w", err)
	}

	if err := s.userRepo.ActivateAccount(ctx, user.ID, jwt, s.signupCredits, customerID); err != nil {
		return nil, "", fmt.Errorf("activate account: %w", err)
	}
	user.Token = &jwt
	user.Credits = s.signupCredits
	user.PaddleCustomerID = &customerID

	return user, jwt, nil
}

// ResendVerification re-sends the verification email, capped at
// MaxVerificationResends; past the cap (or for a stale request) the request
// is deleted and the caller must sign up again.
func (s *authService) ResendVerification(ctx context.Context, resendSecret string) error {
	req, err := s.verifRepo.FindUnverifiedByResendSecret(ctx, strings.TrimSpace(resendSecret))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrInvalidResendRequest
	}
	if err != nil {
		return fmt.Errorf("find verification request: %w", err)
	}

	expired := time.Since(req.CreatedAt) > verificationMaxAge
	if req.ResendCount >= model.MaxVerificationResends || expired {
		if err := s.verifRepo.Delete(ctx, req.ID); err != nil {
			return fmt.Errorf("delete verification request: %w", err)
		}
		return apperrors.ErrResendLimit
	}

	req.ResendCount++
	if err := s.verifRepo.Update(ctx, req); err != nil {
		return fmt.Errorf("update resend count: %w", err)
	}

	if err := s.mailer.SendVerification(ctx, req.Email, req.Link); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword enforces the signup password policy: at least 8
// characters with lowercase, uppercase, digit, and one of the allowed
// special characters.
func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.ErrWeakPassword
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return apperrors.ErrWeakPassword
	}
	return nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
