package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/service"
)

// GenerationHandler handles the generate endpoint.
type GenerationHandler struct {
	generationService service.GenerationService
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// GenerateRequest holds the multipart form fields of a generate request.
type GenerateRequest struct {
	JobDescription string `validate:"required,min=1,max=5000"`
	ResumeText     string `validate:"omitempty,max=6000"`
}

// Generate handles POST /api/generate. The response is sent as soon as the
// pipeline has debited the credit; the cache and history writes run after
// the client already has its materials.
func (h *GenerationHandler) Generate(c echo.Context) error {
	user := CurrentUser(c)

	req := GenerateRequest{
		JobDescription: c.FormValue("job_description"),
		ResumeText:     c.FormValue("resume_text"),
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	useSaved, _ := strconv.ParseBool(c.FormValue("use_saved_resume"))

	file, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "could not read resume_file",
			Code:  "INVALID_UPLOAD",
		})
	}

	in := service.GenerateInput{
		JobDescription: req.JobDescription,
		ResumeText:     req.ResumeText,
		UseSavedResume: useSaved,
		File:           file,
	}

	result, tail, err := h.generationService.Generate(c.Request().Context(), user, in)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusPaymentRequired {
			return c.JSON(httpErr.StatusCode, echo.Map{"message": httpErr.Message})
		}
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := c.JSON(http.StatusOK, result); err != nil {
		return err
	}

	// The persistence tail must outlive the client connection.
	h.generationService.Finish(context.WithoutCancel(c.Request().Context()), tail)
	return nil
}

// readUpload reads the optional resume_file part into memory. A missing part
// is not an error.
func readUpload(c echo.Context) (*service.UploadedFile, error) {
	fh, err := c.FormFile("resume_file")
	if err != nil {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.UploadedFile{
		Data:     data,
		Filename: fh.Filename,
		MimeType: fh.Header.Get(echo.HeaderContentType),
		Size:     fh.Size,
	}, nil
}
