// Package notify sends transactional mail through an HTTP mail API.
// Message bodies are written in Markdown and rendered to HTML before
// dispatch.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
)

// Message is one outbound mail. Body is Markdown source.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// APIMailer sends mail through a JSON-over-HTTP mail provider
type APIMailer struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
	markdown goldmark.Markdown
}

// NewAPIMailer creates a mailer targeting the given provider endpoint
func NewAPIMailer(endpoint, apiKey, from string) *APIMailer {
	return &APIMailer{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		client:   &http.Client{Timeout: 10 * time.Second},
		markdown: goldmark.New(),
	}
}

type apiPayload struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body"`
}

// Send renders the Markdown body and posts the mail to the provider
func (m *APIMailer) Send(ctx context.Context, msg Message) error {
	var html bytes.Buffer
	if err := m.markdown.Convert([]byte(msg.Body), &html); err != nil {
		return fmt.Errorf("failed to render mail body: %w", err)
	}

	payload, err := json.Marshal(apiPayload{
		From:     m.from,
		To:       msg.To,
		Subject:  msg.Subject,
		HTMLBody: html.String(),
		TextBody: msg.Body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned %s", resp.Status)
	}
	return nil
}

// NoopMailer drops messages. Used when no provider is configured.
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, msg Message) error {
	return nil
}
