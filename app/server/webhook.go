package server

import (
	"log/slog"
	"speakmate/app/client/telegram"
	"time"

	"github.com/gofiber/fiber/v2"
)

// handleWebhook acknowledges every callback with 200 before any
// processing happens: the platform redelivers unacknowledged
// updates, so the ack must never wait on an adapter. Valid updates
// are handed to the dispatch queue, everything else is dropped.
func (s *Server) handleWebhook(c *fiber.Ctx) error {
	in, ok, err := telegram.ParseUpdate(c.Body())
	if err != nil {
		slog.Warn("Ignoring malformed update", "error", err)
		return c.SendStatus(fiber.StatusOK)
	}

	if ok {
		s.dispatcher.Add(in)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(s.startTime).Seconds()),
		"chat_enabled":   s.replier != nil,
		"speech_enabled": s.translator != nil,
		"webhook_set":    s.cfg.HTTP.WebhookURL != "",
	})
}
