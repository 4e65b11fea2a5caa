package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/okulpanel/rehberlik-api/pkg/config"
)

const (
	telegramBaseURL        = "https://api.telegram.org"
	defaultTelegramTimeout = 10 * time.Second
)

type telegramSendRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramClient sends text messages to one configured chat through the
// Telegram Bot API. The chat id is treated as an opaque string.
type TelegramClient struct {
	client  *resty.Client
	baseURL string
	token   string
	chatID  string
}

// NewTelegramClient builds a client from config.
func NewTelegramClient(cfg config.TelegramConfig) (*TelegramClient, error) {
	client := resty.New()
	client.SetTimeout(defaultTelegramTimeout)
	client.SetRetryCount(0)

	return NewTelegramClientWith(cfg, telegramBaseURL, client)
}

// NewTelegramClientWith allows substituting the endpoint and HTTP client in
// tests.
func NewTelegramClientWith(cfg config.TelegramConfig, baseURL string, client *resty.Client) (*TelegramClient, error) {
	token := strings.TrimSpace(cfg.BotToken)
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	chatID := strings.TrimSpace(cfg.ChatID)
	if chatID == "" {
		return nil, fmt.Errorf("telegram chat id is required")
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}
	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultTelegramTimeout)
	}

	return &TelegramClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		chatID:  chatID,
	}, nil
}

// SendMessage posts one already-rendered message. A non-2xx response or a
// transport error is returned as a *ProviderError carrying the diagnostics.
func (c *TelegramClient) SendMessage(ctx context.Context, text string) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("telegram client is not initialized")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	body := telegramSendRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		return &ProviderError{Message: "telegram request failed", Cause: err}
	}

	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	return &ProviderError{
		StatusCode: status,
		Body:       strings.TrimSpace(resp.String()),
		Message:    "telegram send rejected",
	}
}
