package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResumeFileMeta describes a stored resume upload.
type ResumeFileMeta struct {
	Path         string `json:"path"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
}

// User represents an authenticated user in the system. The credit balance is
// only ever mutated through the conditional updates in UserRepository, never
// through Save, so it can't go negative under concurrent requests.
//
// SavedResumeFile and SavedResumeText are mutually exclusive: an upload
// stores the file reference and clears the inline text, pasted or extracted
// text is stored inline and clears the file reference.
type User struct {
	ID               uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Email            string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash     string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	PaddleCustomerID *string         `json:"gateway_customer_id,omitempty" gorm:"size:100;index"`
	Token            *string         `json:"-" gorm:"size:512"`
	Credits          int             `json:"credits" gorm:"not null;default:0"`
	SavedResumeFile  *ResumeFileMeta `json:"saved_resume_file,omitempty" gorm:"serializer:json"`
	SavedResumeText  *string         `json:"saved_resume_text,omitempty" gorm:"type:text"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
