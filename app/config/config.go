package config

import (
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

type Config struct {
	HTTP     HTTP
	Log      Log
	Telegram Telegram
	Yandex   Yandex
	OpenAI   OpenAI
}

type HTTP struct {
	// Address to listen on
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`
	// Public webhook URL; when set, the bot registers it on startup
	WebhookURL string `env:"WEBHOOK_URL"`
}

type Telegram struct {
	// Chat bot token, obtain it via BotFather
	Token string `env:"TELEGRAM_TOKEN" validate:"required"`
}

type Yandex struct {
	// Path to a service account key file; speech and translation
	// are disabled when the file is absent
	KeyFile string `env:"YANDEX_KEY_FILE" envDefault:"service-account-key.json"`
	// Folder the AI calls are billed to
	FolderID string `env:"YANDEX_FOLDER_ID"`
	// Default target language for /translate
	TargetLang string `env:"TRANSLATE_TARGET_LANG" envDefault:"zh"`
	// Synthesis voice name
	Voice string `env:"TTS_VOICE" envDefault:"alena"`
	// Recognition language whitelist entry
	RecognitionLang string `env:"STT_LANG" envDefault:"ru-RU"`
}

type OpenAI struct {
	// OpenAI-compatible base url
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	// OpenAI token; chat replies are disabled when empty
	Token string `env:"OPENAI_TOKEN"`
	// Model name
	Model string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

type Log struct {
	// Minimum console log level
	Level string `env:"LOG_LEVEL" envDefault:"debug" validate:"oneof=debug info warn error"`

	Telegram TelegramLog
}

type TelegramLog struct {
	// Bot token of the logging bot; console-only logging when empty
	Token string `env:"LOG_TELEGRAM_TOKEN"`
	// Chat ID to send log messages to
	ChatID string `env:"LOG_TELEGRAM_CHAT_ID"`
}

func Load() (*Config, error) {
	var result Config

	if err := env.Parse(&result); err != nil {
		return nil, oops.Errorf("failed to parse environment: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

// SpeechEnabled reports whether the Yandex credentials are usable.
// Translation, synthesis and recognition all share them.
func (c *Config) SpeechEnabled() bool {
	if c.Yandex.FolderID == "" {
		return false
	}

	_, err := os.Stat(c.Yandex.KeyFile)
	return err == nil
}

func (c *Config) ChatEnabled() bool {
	return c.OpenAI.Token != ""
}
