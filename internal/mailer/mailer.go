// Package mailer sends transactional mail through an HTTP relay service.
// Template content lives in the relay, not here.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Mailer delivers verification emails.
type Mailer interface {
	SendVerification(ctx context.Context, email, verificationLink string) error
}

type relayMailer struct {
	url    string
	secret string
	http   *http.Client
}

// New creates a Mailer backed by the HTTP mail relay.
func New(url, secret string) Mailer {
	return &relayMailer{
		url:    url,
		secret: secret,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *relayMailer) SendVerification(ctx context.Context, email, verificationLink string) error {
	body, err := json.Marshal(map[string]string{
		"email":             email,
		"verification_link": verificationLink,
		"secret":            m.secret,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send verification email: relay status %d", resp.StatusCode)
	}
	return nil
}
