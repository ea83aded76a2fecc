package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrInsufficientCredits is returned when the credit balance is exhausted.
	ErrInsufficientCredits = errors.New("insufficient credits. Please top up")
	// ErrMissingResume is returned when neither resume text nor a file was provided.
	ErrMissingResume = errors.New(`either "resume_text" or "resume_file" is required`)
	// ErrNoSavedResume is returned when use_saved_resume is set but no resume text is cached.
	ErrNoSavedResume = errors.New("no saved resume found in your profile")
	// ErrResumeConflict is returned when a file upload accompanies use_saved_resume.
	ErrResumeConflict = errors.New(`cannot upload a new resume file when "use_saved_resume" is true`)
	// ErrUnsupportedFormat is returned for uploads that are neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New(`"resume_file" must be a PDF or DOCX`)
	// ErrEmptyDocument is returned when extraction yields no text.
	ErrEmptyDocument = errors.New("could not extract any text from the document")
	// ErrGenerationFailed is returned when the model call fails.
	ErrGenerationFailed = errors.New("failed to generate cover letter and message")
	// ErrGenerationParse is returned when the model response does not match the output schema.
	ErrGenerationParse = errors.New("model response did not match the expected schema")
	// ErrGenerationNotFound is returned when a past generation lookup fails.
	ErrGenerationNotFound = errors.New("generation not found")
	// ErrVerificationNotFound is returned for an invalid or expired verification link.
	ErrVerificationNotFound = errors.New("invalid or expired verification link")
	// ErrResendLimit is returned when the verification resend cap is exceeded.
	ErrResendLimit = errors.New("resend limit reached. Please submit a new verification request")
	// ErrInvalidResendRequest is returned for an unknown resend secret.
	ErrInvalidResendRequest = errors.New("invalid resend request")
	// ErrWeakPassword is returned when a signup password fails the policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters long and include uppercase, lowercase, number, and special character")
	// ErrRateLimited is returned when a user exceeds the generate rate limit.
	ErrRateLimited = errors.New("too many requests. Please slow down")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Validation-class errors
// surface their message; anything unknown collapses to a generic 500 so
// internal detail never leaks.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInsufficientCredits):
		return NewHTTPError(http.StatusPaymentRequired, err.Error(), "INSUFFICIENT_CREDITS")
	case errors.Is(err, ErrMissingResume):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_RESUME")
	case errors.Is(err, ErrNoSavedResume):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_SAVED_RESUME")
	case errors.Is(err, ErrResumeConflict):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESUME_CONFLICT")
	case errors.Is(err, ErrUnsupportedFormat):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FORMAT")
	case errors.Is(err, ErrEmptyDocument):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EXTRACTION_ERROR")
	case errors.Is(err, ErrGenerationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "GENERATION_NOT_FOUND")
	case errors.Is(err, ErrVerificationNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VERIFICATION_NOT_FOUND")
	case errors.Is(err, ErrResendLimit):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESEND_LIMIT")
	case errors.Is(err, ErrInvalidResendRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RESEND_REQUEST")
	case errors.Is(err, ErrWeakPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WEAK_PASSWORD")
	case errors.Is(err, ErrRateLimited):
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), "RATE_LIMITED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
