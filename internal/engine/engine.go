// Package engine turns a resume and a job description into application
// materials through a schema-constrained model call.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	apperrors "github.com/ziplai/ziplai/internal/errors"
	"github.com/ziplai/ziplai/internal/llm"
)

// NotAvailable is the sentinel for fields the model could not extract from
// the job description. Fields are never fabricated.
const NotAvailable = "N/A"

const maxOutputTokens = 700

// Generation is one produced application-materials tuple.
type Generation struct {
	CoverLetter        string
	RecruiterMessage   string
	JobTitle           *string
	CompanyName        *string
	ContactPersonName  *string
	ContactPersonEmail *string
}

// Completer is the slice of the llm client the engine needs.
type Completer interface {
	CompleteStructured(ctx context.Context, system, user string, schema llm.Schema, maxTokens int) ([]byte, error)
}

// Engine builds prompts and parses structured model responses. Stateless and
// side-effect-free; it never touches persistence or the ledger.
type Engine struct {
	completer Completer
}

// New creates an Engine on top of a completions client.
func New(completer Completer) *Engine {
	return &Engine{completer: completer}
}

// applicationDetails is the fixed output schema of one generation call.
type applicationDetails struct {
	Title           *string `json:"title"`
	CompanyName     *string `json:"company_name"`
	ContactPName    *string `json:"contact_p_name"`
	ContactPEmail   *string `json:"contact_p_email"`
	CoverLetter     string  `json:"cover_letter"`
	LinkedinMessage string  `json:"linkedin_message"`
}

var applicationDetailsSchema = llm.Schema{
	Name: "application_details",
	Schema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"title": {"type": ["string", "null"]},
			"company_name": {"type": ["string", "null"]},
			"contact_p_name": {"type": ["string", "null"]},
			"contact_p_email": {"type": ["string", "null"]},
			"cover_letter": {"type": "string"},
			"linkedin_message": {"type": "string"}
		},
		"required": ["title", "company_name", "contact_p_name", "contact_p_email", "cover_letter", "linkedin_message"],
		"additionalProperties": false
	}`),
}

// Generate runs one model call and validates the response against the output
// schema. No retries; the caller decides retry policy.
func (e *Engine) Generate(ctx context.Context, resumeText, jobDescription string) (*Generation, error) {
	prompt := buildPrompt(resumeText, jobDescription)

	content, err := e.completer.CompleteStructured(ctx, systemPrompt, prompt, applicationDetailsSchema, maxOutputTokens)
	if err != nil {
		log.Printf("generation call failed: %v", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGenerationFailed, err)
	}

	var details applicationDetails
	if err := json.Unmarshal(content, &details); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGenerationParse, err)
	}
	if details.CoverLetter == "" || details.LinkedinMessage == "" {
		return nil, apperrors.ErrGenerationParse
	}

	return &Generation{
		CoverLetter:        details.CoverLetter,
		RecruiterMessage:   details.LinkedinMessage,
		JobTitle:           normalize(details.Title),
		CompanyName:        normalize(details.CompanyName),
		ContactPersonName:  normalize(details.ContactPName),
		ContactPersonEmail: normalize(details.ContactPEmail),
	}, nil
}

// normalize collapses nulls and blanks to the NotAvailable sentinel.
func normalize(v *string) *string {
	if v == nil || *v == "" || *v == "null" {
		na := NotAvailable
		return &na
	}
	return v
}
