package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBotToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "zh", cfg.Yandex.TargetLang)
	assert.Equal(t, "alena", cfg.Yandex.Voice)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
}

func TestCapabilityFlags(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("OPENAI_TOKEN", "")
	t.Setenv("YANDEX_FOLDER_ID", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.ChatEnabled())
	assert.False(t, cfg.SpeechEnabled())

	cfg.OpenAI.Token = "sk-test"
	assert.True(t, cfg.ChatEnabled())
}

func TestSpeechEnabledNeedsKeyFile(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("YANDEX_FOLDER_ID", "b1gfolder")

	keyFile := filepath.Join(t.TempDir(), "key.json")
	t.Setenv("YANDEX_KEY_FILE", keyFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.SpeechEnabled())

	require.NoError(t, os.WriteFile(keyFile, []byte(`{}`), 0644))
	assert.True(t, cfg.SpeechEnabled())
}
