package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/tictactoe-promo/internal/apperror"
)

const maxErrorBody = 1 << 10

var ErrUnexpectedStatus = errors.New("telegram error")

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Client posts messages to one chat through the Telegram Bot API.
type Client struct {
	httpClient *http.Client
	apiURL     string
	botToken   string
	chatID     string
}

func New(httpClient *http.Client, apiURL, botToken, chatID string) *Client {
	return &Client{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
		botToken:   botToken,
		chatID:     chatID,
	}
}

// SendMessage - sends text to the configured chat.
func (that *Client) SendMessage(ctx context.Context, text string) error {
	if that.botToken == "" {
		return apperror.ErrMissingBotToken
	}

	if that.chatID == "" {
		return apperror.ErrMissingChatID
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: that.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", that.apiURL, that.botToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return nil
}
