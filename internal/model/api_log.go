package model

import "time"

// APILog is a free-form diagnostic record. Write-only; nothing reads these
// back.
type APILog struct {
	ID        uint                   `gorm:"primaryKey"`
	Data      map[string]interface{} `gorm:"serializer:json;not null"`
	CreatedAt time.Time
}
