// Package notify posts transaction events to a Telegram chat. Notification
// failures are logged and never propagate into the mutation path.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/alienterprises/cashbook/internal/domain"
)

const sendTimeout = 10 * time.Second

// Telegram sends messages through the Bot API.
type Telegram struct {
	botToken string
	chatID   string
	client   *http.Client
	baseURL  string
	log      zerolog.Logger
}

// NewTelegram creates a notifier. Returns nil when the token or chat ID is
// unset, which callers treat as "notifications disabled".
func NewTelegram(botToken, chatID string, log zerolog.Logger) *Telegram {
	if botToken == "" || chatID == "" {
		return nil
	}
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: sendTimeout},
		baseURL:  "https://api.telegram.org",
		log:      log,
	}
}

// Send posts a Markdown-formatted message to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return fmt.Errorf("encode telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram responded %d", resp.StatusCode)
	}
	return nil
}

// TransactionRecorded announces a newly recorded transaction. Best effort:
// errors are logged, not returned.
func (t *Telegram) TransactionRecorded(ctx context.Context, tx domain.Transaction) {
	if t == nil {
		return
	}
	text := fmt.Sprintf("*%s* %s of ₹%.0f at %s by %s",
		tx.Type, tx.PaymentMethod, tx.Amount, tx.Location, tx.RecordedBy)
	if err := t.Send(ctx, text); err != nil {
		t.log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("Failed to send Telegram notification")
	}
}
