package server

import (
	"encoding/base64"
	"log/slog"
	"speakmate/app/service/history"
	"speakmate/app/util/failure"

	"github.com/gofiber/fiber/v2"
)

type translateRequest struct {
	Text       string `json:"text" validate:"required"`
	TargetLang string `json:"target_lang"`
}

type chatRequest struct {
	Prompt  string        `json:"prompt" validate:"required"`
	History []turnPayload `json:"history" validate:"dive"`
}

type turnPayload struct {
	Role string `json:"role" validate:"required,oneof=user assistant"`
	Text string `json:"text" validate:"required"`
}

type sttRequest struct {
	Audio string `json:"audio" validate:"required,base64"`
}

type ttsRequest struct {
	Text string `json:"text" validate:"required"`
}

func (s *Server) handleTranslate(c *fiber.Ctx) error {
	if s.translator == nil {
		return errDisabled(c)
	}

	var req translateRequest
	if err := s.bind(c, &req); err != nil {
		return errBadBody(c, err)
	}

	lang := req.TargetLang
	if lang == "" {
		lang = s.cfg.Yandex.TargetLang
	}

	result, err := s.translator.TranslateTo(c.Context(), req.Text, lang)
	if err != nil {
		return errUpstream(c, "translate", err)
	}

	return c.JSON(fiber.Map{"translated_text": result})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	if s.replier == nil {
		return errDisabled(c)
	}

	var req chatRequest
	if err := s.bind(c, &req); err != nil {
		return errBadBody(c, err)
	}

	turns := make([]history.Turn, 0, len(req.History))
	for _, t := range req.History {
		turns = append(turns, history.Turn{
			Role: history.Role(t.Role),
			Text: t.Text,
		})
	}

	result, err := s.replier.GenerateStateless(c.Context(), turns, req.Prompt)
	if err != nil {
		return errUpstream(c, "chat", err)
	}

	return c.JSON(fiber.Map{"reply": result})
}

func (s *Server) handleSTT(c *fiber.Ctx) error {
	if s.recognizer == nil {
		return errDisabled(c)
	}

	var req sttRequest
	if err := s.bind(c, &req); err != nil {
		return errBadBody(c, err)
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		return errBadBody(c, err)
	}

	transcript, err := s.recognizer.TranscribeAudio(c.Context(), audio)
	if err != nil {
		return errUpstream(c, "stt", err)
	}

	return c.JSON(fiber.Map{"transcript": transcript})
}

func (s *Server) handleTTS(c *fiber.Ctx) error {
	if s.synthesizer == nil {
		return errDisabled(c)
	}

	var req ttsRequest
	if err := s.bind(c, &req); err != nil {
		return errBadBody(c, err)
	}

	audio, err := s.synthesizer.Synthesize(c.Context(), req.Text)
	if err != nil {
		return errUpstream(c, "tts", err)
	}

	return c.JSON(fiber.Map{"audio": base64.StdEncoding.EncodeToString(audio)})
}

func (s *Server) bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}

	return s.validate.Struct(req)
}

func errDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "capability is not configured",
	})
}

func errBadBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func errUpstream(c *fiber.Ctx, op string, err error) error {
	class := failure.Classify(err)

	slog.Error("API call failed", "op", op, "class", string(class), "error", err)

	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": string(class),
	})
}
