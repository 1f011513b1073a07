package sender

import (
	"context"
	"encoding/json"
	"fmt"
)

const telegramDefaultEndpoint = "https://api.telegram.org"

// Telegram implements the Sender interface for the Telegram Bot API.
// Recipient identifiers are chat ids.
type Telegram struct {
	botToken string
	endpoint string
	client   HTTPClient
}

// NewTelegram creates a Telegram sender from the given configuration.
func NewTelegram(botToken, endpoint string, client HTTPClient) *Telegram {
	if endpoint == "" {
		endpoint = telegramDefaultEndpoint
	}
	return &Telegram{
		botToken: botToken,
		endpoint: endpoint,
		client:   client,
	}
}

func (t *Telegram) GetName() string { return "telegram" }

type telegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// Send delivers text to a chat via the sendMessage API.
func (t *Telegram) Send(ctx context.Context, recipientID, text string) error {
	payload, err := json.Marshal(telegramSendRequest{
		ChatID:    recipientID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}

	resp, err := t.client.Do(&HTTPRequest{
		Method: "POST",
		URL:    fmt.Sprintf("%s/bot%s/sendMessage", t.endpoint, t.botToken),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	})
	if err != nil {
		return fmt.Errorf("telegram: send request: %w", err)
	}

	var tgResp telegramResponse
	if err := json.Unmarshal(resp.Body, &tgResp); err == nil && tgResp.OK {
		return nil
	}

	message := tgResp.Description
	if message == "" {
		message = fmt.Sprintf("unexpected response (status %d)", resp.StatusCode)
	}
	return &SenderError{
		Sender:     "telegram",
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
