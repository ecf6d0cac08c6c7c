package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"speakmate/app/config"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/do"
)

// Client wraps the outbound half of the Bot API: everything the bot
// sends back to a chat plus voice-file resolution.
type Client struct {
	cfg        *config.Config
	bot        *tgbotapi.BotAPI
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	client := &Client{
		cfg: cfg,
		bot: bot,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if cfg.HTTP.WebhookURL != "" {
		if err = client.registerWebhook(cfg.HTTP.WebhookURL); err != nil {
			return nil, err
		}
	}

	slog.Info("Authorized on telegram", "username", bot.Self.UserName)

	return client, nil
}

func (c *Client) registerWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("failed to build webhook config: %w", err)
	}

	if _, err = c.bot.Request(wh); err != nil {
		return fmt.Errorf("failed to register webhook: %w", err)
	}

	slog.Info("Webhook registered", "url", url)

	return nil
}

func (c *Client) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// SendNotice delivers a failure explanation to the user. Its own
// failure is only logged, never returned, so a broken send path
// cannot trigger further notices.
func (c *Client) SendNotice(chatID int64, text string) {
	if err := c.SendText(chatID, text); err != nil {
		slog.Error("Failed to deliver notice", "chat_id", chatID, "error", err)
	}
}

// SendVoice uploads synthesized OGG/Opus audio as a voice note.
func (c *Client) SendVoice(chatID int64, audio []byte) error {
	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{
		Name:  "speech.ogg",
		Bytes: audio,
	})

	if _, err := c.bot.Send(voice); err != nil {
		return fmt.Errorf("failed to send voice: %w", err)
	}

	return nil
}

func (c *Client) SendTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)

	if _, err := c.bot.Request(action); err != nil {
		slog.Warn("Failed to send chat action", "chat_id", chatID, "error", err)
	}
}

// DownloadVoice resolves a previously referenced voice attachment
// and fetches its content.
func (c *Client) DownloadVoice(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected download status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file body: %w", err)
	}

	return data, nil
}
