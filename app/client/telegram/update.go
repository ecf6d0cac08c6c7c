package telegram

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Inbound is the slice of a webhook update the bot acts on.
type Inbound struct {
	ChatID      int64
	Text        string
	VoiceFileID string
}

// ParseUpdate decodes a webhook callback body. The second return
// value is false when the update carries nothing processable
// (no message, or a message with neither text nor voice).
func ParseUpdate(body []byte) (Inbound, bool, error) {
	var update tgbotapi.Update

	if err := json.Unmarshal(body, &update); err != nil {
		return Inbound{}, false, fmt.Errorf("failed to parse update: %w", err)
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return Inbound{}, false, nil
	}

	inbound := Inbound{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}

	if msg.Voice != nil {
		inbound.VoiceFileID = msg.Voice.FileID
	}

	if inbound.Text == "" && inbound.VoiceFileID == "" {
		return Inbound{}, false, nil
	}

	return inbound, true, nil
}
