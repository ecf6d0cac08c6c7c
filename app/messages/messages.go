// Package messages holds every user-facing text the bot sends,
// in one embedded catalog so wording can change without touching handlers.
package messages

import (
	"fmt"
	"speakmate/app/util/failure"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var catalogData []byte

const (
	Help             = "help"
	ResetDone        = "reset_done"
	UsageTranslate   = "usage_translate"
	UsageTTS         = "usage_tts"
	ChatDisabled     = "chat_disabled"
	SpeechDisabled   = "speech_disabled"
	TranscriptPrefix = "transcript_prefix"
)

type Catalog struct {
	texts map[string]string
}

func Load() (*Catalog, error) {
	texts := make(map[string]string)

	if err := yaml.Unmarshal(catalogData, &texts); err != nil {
		return nil, fmt.Errorf("failed to parse message catalog: %w", err)
	}

	return &Catalog{texts: texts}, nil
}

// Get never fails: an unknown key falls back to the generic error text.
func (c *Catalog) Get(key string) string {
	if text, ok := c.texts[key]; ok {
		return text
	}

	return c.texts["err_unknown"]
}

// ForFailure maps a classified adapter error to its explanation.
func (c *Catalog) ForFailure(class failure.Class) string {
	return c.Get("err_" + string(class))
}
