package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ParseModeHTML tells the Bot API to render the simple HTML subset
const ParseModeHTML = "HTML"

// Client defines the interface for interacting with the Telegram Bot API
type Client interface {
	SendMessage(ctx context.Context, botToken, chatID, text, parseMode string) error
}

// APIError is returned when the Bot API does not report success
type APIError struct {
	StatusCode  int
	Description string
	Body        string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("telegram API error (status %d): %s", e.StatusCode, e.Description)
	}
	return fmt.Sprintf("telegram API error (status %d)", e.StatusCode)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Telegram client. The bot token is passed per call so
// that secrets stay with the caller's configuration.
func NewClient(baseURL string, httpClient *http.Client) Client {
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &clientImpl{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *clientImpl) SendMessage(ctx context.Context, botToken, chatID, text, parseMode string) error {
	sendURL := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, botToken)

	jsonPayload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The request URL embeds the bot token; keep it out of the error text.
		return fmt.Errorf("error sending message: %w", unwrapURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	var parsed apiResponse
	_ = json.Unmarshal(body, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !parsed.OK {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Description: parsed.Description,
			Body:        string(body),
		}
	}

	return nil
}

func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
