// Package storage persists uploaded resume files on local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ziplai/ziplai/internal/extract"
)

// ResumeStore saves uploaded resume files and returns their paths.
type ResumeStore interface {
	Save(userID string, data []byte, mimeType string) (string, error)
}

type diskStore struct {
	dir string
}

// NewDiskStore creates a ResumeStore rooted at dir, creating it if needed.
func NewDiskStore(dir string) (ResumeStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create resume dir: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

func (s *diskStore) Save(userID string, data []byte, mimeType string) (string, error) {
	ext := "docx"
	if mimeType == extract.MimePDF {
		ext = "pdf"
	}
	path := filepath.Join(s.dir, fmt.Sprintf("resume_%s_%d.%s", userID, time.Now().UnixMilli(), ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return path, nil
}
