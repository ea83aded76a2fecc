package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/model"
	"github.com/ziplai/ziplai/internal/repository"
)

// HistoryService reads back past generations.
type HistoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]repository.GenerationSummary, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*model.PastGeneration, error)
	ExportCSV(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

type historyService struct {
	generations repository.GenerationRepository
}

// NewHistoryService creates a new history service.
func NewHistoryService(generations repository.GenerationRepository) HistoryService {
	return &historyService{generations: generations}
}

func (s *historyService) List(ctx context.Context, userID uuid.UUID) ([]repository.GenerationSummary, error) {
	return s.generations.ListByUser(ctx, userID)
}

func (s *historyService) Get(ctx context.Context, userID, id uuid.UUID) (*model.PastGeneration, error) {
	gen, err := s.generations.FindByIDAndUser(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrGenerationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find generation: %w", err)
	}
	return gen, nil
}

// ExportCSV serializes the user's full history as a CSV table with CRLF
// records and a UTF-8 BOM so it opens cleanly in Excel.
func (s *historyService) ExportCSV(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	gens, err := s.generations.AllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load generations: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write([]string{"Title", "Job Description", "Cover Letter", "Recruiter Message"}); err != nil {
		return nil, err
	}
	for _, g := range gens {
		title := ""
		if g.Title != nil {
			title = *g.Title
		}
		if err := w.Write([]string{title, g.JobDescription, g.CoverLetter, g.RecruiterMessage}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
