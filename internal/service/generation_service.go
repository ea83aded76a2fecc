package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/ziplai/ziplai/internal/cache"
	"github.com/ziplai/ziplai/internal/engine"
	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/extract"
	"github.com/ziplai/ziplai/internal/model"
	"github.com/ziplai/ziplai/internal/repository"
	"github.com/ziplai/ziplai/internal/storage"
)

// UploadedFile is a resume upload read out of the multipart request.
type UploadedFile struct {
	Data     []byte
	Filename string
	MimeType string
	Size     int64
}

// GenerateInput is one validated generate request.
type GenerateInput struct {
	JobDescription string
	ResumeText     string
	UseSavedResume bool
	File           *UploadedFile
}

// GenerateResult is the client-facing outcome of a generation.
type GenerateResult struct {
	CoverLetter      string `json:"cover_letter"`
	RecruiterMessage string `json:"recruiter_message"`
	RemainingCredits int    `json:"remaining_credits"`
}

// GenerationTail carries the persistence work deferred until after the
// response is sent: resume cache overwrite and the history snapshot.
type GenerationTail struct {
	UserID         uuid.UUID
	UsedSaved      bool
	File           *UploadedFile
	ResumeText     string
	JobDescription string
	Generation     *engine.Generation
}

// Generator is the slice of the engine the pipeline needs.
type Generator interface {
	Generate(ctx context.Context, resumeText, jobDescription string) (*engine.Generation, error)
}

// GenerationService orchestrates the generate pipeline: credit precondition,
// resume resolution, model call, ledger debit, then the deferred persistence
// tail.
type GenerationService interface {
	Generate(ctx context.Context, user *model.User, in GenerateInput) (*GenerateResult, *GenerationTail, error)
	Finish(ctx context.Context, tail *GenerationTail)
}

type generationService struct {
	users       repository.UserRepository
	generations repository.GenerationRepository
	credits     CreditService
	engine      Generator
	extractor   extract.Extractor
	store       storage.ResumeStore
	cache       *cache.Client
}

// NewGenerationService creates the generation pipeline service.
func NewGenerationService(
	users repository.UserRepository,
	generations repository.GenerationRepository,
	credits CreditService,
	gen Generator,
	extractor extract.Extractor,
	store storage.ResumeStore,
	cacheClient *cache.Client,
) GenerationService {
	return &generationService{
		users:       users,
		generations: generations,
		credits:     credits,
		engine:      gen,
		extractor:   extractor,
		store:       store,
		cache:       cacheClient,
	}
}

// Generate runs the pipeline up to and including the credit debit. The debit
// happens strictly after a successful model call so a failed generation is
// never billed; the conditional debit also closes the race where two
// requests pass the precondition with one credit left — the loser gets
// ErrInsufficientCredits and writes no history.
func (s *generationService) Generate(ctx context.Context, user *model.User, in GenerateInput) (*GenerateResult, *GenerationTail, error) {
	if user.Credits <= 0 {
		return nil, nil, apperrors.ErrInsufficientCredits
	}

	resumeText, err := s.resolveResume(ctx, user, in)
	if err != nil {
		return nil, nil, err
	}

	gen, err := s.engine.Generate(ctx, resumeText, in.JobDescription)
	if err != nil {
		return nil, nil, err
	}

	newBalance, err := s.credits.TryDebit(ctx, user.ID, 1)
	if err != nil {
		return nil, nil, err
	}

	result := &GenerateResult{
		CoverLetter:      gen.CoverLetter,
		RecruiterMessage: gen.RecruiterMessage,
		RemainingCredits: newBalance,
	}
	tail := &GenerationTail{
		UserID:         user.ID,
		UsedSaved:      in.UseSavedResume,
		File:           in.File,
		ResumeText:     resumeText,
		JobDescription: in.JobDescription,
		Generation:     gen,
	}
	return result, tail, nil
}

// resolveResume picks exactly one resume source. When use_saved_resume is
// set, only cached text counts; a cached file reference alone is not a valid
// substitute. Otherwise an upload wins over pasted text.
func (s *generationService) resolveResume(ctx context.Context, user *model.User, in GenerateInput) (string, error) {
	if in.UseSavedResume {
		if in.File != nil {
			return "", apperrors.ErrResumeConflict
		}
		if cached, _ := s.cache.Get(ctx, cache.ResumeTextKey(user.ID.String())); len(cached) > 0 {
			return string(cached), nil
		}
		if user.SavedResumeText != nil && *user.SavedResumeText != "" {
			return *user.SavedResumeText, nil
		}
		return "", apperrors.ErrNoSavedResume
	}

	if in.File != nil {
		if !extract.SupportedMime(in.File.MimeType) {
			return "", apperrors.ErrUnsupportedFormat
		}
		return s.extractor.Extract(in.File.Data, in.File.MimeType)
	}
	if in.ResumeText != "" {
		return in.ResumeText, nil
	}
	return "", apperrors.ErrMissingResume
}

// Finish runs the persistence tail. Callers invoke it after the response has
// been dispatched; errors here are logged, never surfaced — the user already
// has their materials and was already charged.
func (s *generationService) Finish(ctx context.Context, tail *GenerationTail) {
	if !tail.UsedSaved {
		if tail.File != nil {
			meta, err := s.saveResumeFile(tail)
			if err != nil {
				log.Printf("persist resume file for user %s: %v", tail.UserID, err)
			} else if err := s.users.UpdateSavedResume(ctx, tail.UserID, meta, nil); err != nil {
				log.Printf("update saved resume for user %s: %v", tail.UserID, err)
			}
		} else {
			text := tail.ResumeText
			if err := s.users.UpdateSavedResume(ctx, tail.UserID, nil, &text); err != nil {
				log.Printf("update saved resume for user %s: %v", tail.UserID, err)
			}
		}
	}

	// Extracted text is cached for both sources so use_saved_resume works
	// after a file upload, whose durable copy is the file reference only.
	_ = s.cache.Set(ctx, cache.ResumeTextKey(tail.UserID.String()), []byte(tail.ResumeText), cache.ResumeTextTTL)

	gen := tail.Generation
	record := &model.PastGeneration{
		UserID:             tail.UserID,
		Title:              gen.JobTitle,
		JobDescription:     tail.JobDescription,
		ResumeText:         tail.ResumeText,
		CoverLetter:        gen.CoverLetter,
		RecruiterMessage:   gen.RecruiterMessage,
		CompanyName:        gen.CompanyName,
		ContactPersonName:  gen.ContactPersonName,
		ContactPersonEmail: gen.ContactPersonEmail,
	}
	if err := s.generations.Create(ctx, record); err != nil {
		log.Printf("persist generation for user %s: %v", tail.UserID, err)
	}
}

func (s *generationService) saveResumeFile(tail *GenerationTail) (*model.ResumeFileMeta, error) {
	path, err := s.store.Save(tail.UserID.String(), tail.File.Data, tail.File.MimeType)
	if err != nil {
		return nil, err
	}
	return &model.ResumeFileMeta{
		Path:         path,
		OriginalName: tail.File.Filename,
		MimeType:     tail.File.MimeType,
		Size:         tail.File.Size,
	}, nil
}
