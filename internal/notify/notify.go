// Package notify delivers assembled application submissions to a team
// notification channel.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when the destination webhook URL is empty.
var ErrNotConfigured = errors.New("webhook URL is not configured")

// Field is one labeled value of an outbound notification. Ordering among
// fields is significant; the downstream renderer displays them in sequence.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Embed is a single outbound notification message.
type Embed struct {
	Title     string
	Color     int
	Fields    []Field
	Timestamp time.Time
}

// Channel defines the interface for submission notification delivery.
type Channel interface {
	Send(ctx context.Context, embed Embed) error
	Type() string
}

// DiscordChannel sends submissions to a Discord webhook as a single embed.
type DiscordChannel struct {
	WebhookURL string
	Timeout    time.Duration
	client     *http.Client
}

// NewDiscordChannel creates a Discord webhook notification channel.
func NewDiscordChannel(webhookURL string, timeout time.Duration) *DiscordChannel {
	return &DiscordChannel{
		WebhookURL: webhookURL,
		Timeout:    timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (d *DiscordChannel) Type() string {
	return "discord"
}

func (d *DiscordChannel) Send(ctx context.Context, embed Embed) error {
	if d.WebhookURL == "" {
		return ErrNotConfigured
	}

	payload := map[string]interface{}{
		"embeds": []map[string]interface{}{
			{
				"title":     embed.Title,
				"color":     embed.Color,
				"fields":    embed.Fields,
				"timestamp": embed.Timestamp.UTC().Format(time.RFC3339),
			},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.WebhookURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "VolunteerIntake/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, body)
	}

	return nil
}

// LogChannel writes notifications to logs (for development and testing).
type LogChannel struct {
	logger func(format string, v ...interface{})
}

// NewLogChannel creates a log-based notification channel.
func NewLogChannel(logger func(format string, v ...interface{})) *LogChannel {
	return &LogChannel{logger: logger}
}

func (l *LogChannel) Type() string {
	return "log"
}

func (l *LogChannel) Send(ctx context.Context, embed Embed) error {
	l.logger("SUBMISSION RECEIVED: %s (fields=%d)", embed.Title, len(embed.Fields))
	return nil
}
