package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PastGeneration is an immutable record of one successful generation. The
// resume text is snapshotted per generation even though the user-level cache
// may later be overwritten.
type PastGeneration struct {
	ID                 uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Title              *string   `json:"title" gorm:"size:255"`
	JobDescription     string    `json:"job_description" gorm:"type:text;not null"`
	ResumeText         string    `json:"resume_text" gorm:"type:text;not null"`
	CoverLetter        string    `json:"cover_letter" gorm:"type:text;not null"`
	RecruiterMessage   string    `json:"recruiter_message" gorm:"type:text;not null"`
	CompanyName        *string   `json:"company_name" gorm:"size:255"`
	ContactPersonName  *string   `json:"contact_person_name" gorm:"size:255"`
	ContactPersonEmail *string   `json:"contact_person_email" gorm:"size:255"`
	CreatedAt          time.Time `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *PastGeneration) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
