package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// WebhookEmbed is a Discord-style rich embed. Alert fills in all four
// fields: the game as Title, the message as Description, a fixed accent
// Color and the send time as Timestamp.
type WebhookEmbed struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Color       int    `json:"color,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type webhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []WebhookEmbed `json:"embeds,omitempty"`
}

// WebhookAlerter posts agent.Alert calls to a chat webhook URL. The
// zero value with an empty URL is valid and silently drops alerts,
// which is what a process without a configured webhook secret should
// do rather than failing a move request over a diagnostics outage.
type WebhookAlerter struct {
	URL    string
	Client *http.Client
	Log    *slog.Logger
}

// Alert implements agent.Alerter by posting message as a Discord-style
// webhook embed. Delivery errors are logged, never returned or
// propagated, since an alert failing must never block a move response.
func (w *WebhookAlerter) Alert(ctx context.Context, gameID, message string) {
	if w.URL == "" {
		return
	}

	payload := webhookPayload{
		Embeds: []WebhookEmbed{{
			Title:       fmt.Sprintf("game %s", gameID),
			Description: message,
			Color:       0xE05D44,
			Timestamp:   time.Now().Format(time.RFC3339),
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		w.logf("marshal alert payload: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		w.logf("build alert request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		w.logf("send alert webhook: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		w.logf("alert webhook returned status %d", resp.StatusCode)
	}
}

func (w *WebhookAlerter) logf(format string, args ...any) {
	if w.Log != nil {
		w.Log.Warn(fmt.Sprintf(format, args...))
	}
}
