package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ziplai/ziplai/internal/engine"
	"github.com/ziplai/ziplai/internal/model"
	"github.com/ziplai/ziplai/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByPaddleCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateToken(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockUserRepository) ActivateAccount(ctx context.Context, id uuid.UUID, token string, credits int, paddleCustomerID string) error {
	args := m.Called(ctx, id, token, credits, paddleCustomerID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSavedResume(ctx context.Context, id uuid.UUID, file *model.ResumeFileMeta, text *string) error {
	args := m.Called(ctx, id, file, text)
	return args.Error(0)
}

func (m *MockUserRepository) DebitCredits(ctx context.Context, id uuid.UUID, amount int) (int, error) {
	args := m.Called(ctx, id, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) AddCredits(ctx context.Context, id uuid.UUID, amount int) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockUserRepository) Balance(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// MockVerificationRepository is a mock implementation of VerificationRepository.
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, req *model.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockVerificationRepository) FindUnverifiedByEmail(ctx context.Context, email string) (*model.VerificationRequest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRequest), args.Error(1)
}

func (m *MockVerificationRepository) FindUnverifiedByEmailAndToken(ctx context.Context, email, token string) (*model.VerificationRequest, error) {
	args := m.Called(ctx, email, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRequest), args.Error(1)
}

func (m *MockVerificationRepository) FindUnverifiedByResendSecret(ctx context.Context, secret string) (*model.VerificationRequest, error) {
	args := m.Called(ctx, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationRequest), args.Error(1)
}

func (m *MockVerificationRepository) Update(ctx context.Context, req *model.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockVerificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGenerationRepository is a mock implementation of GenerationRepository.
type MockGenerationRepository struct {
	mock.Mock
}

func (m *MockGenerationRepository) Create(ctx context.Context, gen *model.PastGeneration) error {
	args := m.Called(ctx, gen)
	return args.Error(0)
}

func (m *MockGenerationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]repository.GenerationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.GenerationSummary), args.Error(1)
}

func (m *MockGenerationRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.PastGeneration, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PastGeneration), args.Error(1)
}

func (m *MockGenerationRepository) AllByUser(ctx context.Context, userID uuid.UUID) ([]model.PastGeneration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PastGeneration), args.Error(1)
}

// MockCreditRequestRepository is a mock implementation of CreditRequestRepository.
type MockCreditRequestRepository struct {
	mock.Mock
}

func (m *MockCreditRequestRepository) Create(ctx context.Context, req *model.CreditRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockAPILogRepository is a mock implementation of APILogRepository.
type MockAPILogRepository struct {
	mock.Mock
}

func (m *MockAPILogRepository) Create(ctx context.Context, entry *model.APILog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerification(ctx context.Context, email, link string) error {
	args := m.Called(ctx, email, link)
	return args.Error(0)
}

// MockCustomerCreator is a mock implementation of payments.CustomerCreator.
type MockCustomerCreator struct {
	mock.Mock
}

func (m *MockCustomerCreator) CreateCustomer(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// MockGenerator is a mock implementation of Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, resumeText, jobDescription string) (*engine.Generation, error) {
	args := m.Called(ctx, resumeText, jobDescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Generation), args.Error(1)
}

// MockExtractor is a mock implementation of extract.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(data []byte, mimeType string) (string, error) {
	args := m.Called(data, mimeType)
	return args.String(0), args.Error(1)
}

// MockResumeStore is a mock implementation of storage.ResumeStore.
type MockResumeStore struct {
	mock.Mock
}

func (m *MockResumeStore) Save(userID string, data []byte, mimeType string) (string, error) {
	args := m.Called(userID, data, mimeType)
	return args.String(0), args.Error(1)
}
