package router

import (
	"context"
	"log/slog"
	"speakmate/app/client/telegram"
	"speakmate/app/messages"
	"speakmate/app/service/history"
	"speakmate/app/service/reply"
	"speakmate/app/service/speech"
	"speakmate/app/service/transcribe"
	"speakmate/app/service/translate"
	"speakmate/app/util/failure"

	"github.com/samber/do"
)

type Sender interface {
	SendText(chatID int64, text string) error
	SendNotice(chatID int64, text string)
	SendVoice(chatID int64, audio []byte) error
	SendTyping(chatID int64)
}

type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Recognizer interface {
	Transcribe(ctx context.Context, fileID string) (string, error)
}

type Replier interface {
	Generate(ctx context.Context, chatID int64, text string) (string, error)
}

// Service classifies each inbound message and runs the matching
// capability. Handle never returns an error: adapter failures are
// converted into per-class user notices, everything else is logged.
type Service struct {
	sender     Sender
	historySvc *history.Service
	catalog    *messages.Catalog

	// nil when the corresponding credentials are absent
	translator  Translator
	synthesizer Synthesizer
	recognizer  Recognizer
	replier     Replier
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		sender:     do.MustInvoke[*telegram.Client](di),
		historySvc: do.MustInvoke[*history.Service](di),
		catalog:    do.MustInvoke[*messages.Catalog](di),
	}

	if svc, err := do.Invoke[*translate.Service](di); err == nil {
		s.translator = svc
	}
	if svc, err := do.Invoke[*speech.Service](di); err == nil {
		s.synthesizer = svc
	}
	if svc, err := do.Invoke[*transcribe.Service](di); err == nil {
		s.recognizer = svc
	}
	if svc, err := do.Invoke[*reply.Service](di); err == nil {
		s.replier = svc
	}

	return s, nil
}

func (s *Service) Handle(ctx context.Context, in telegram.Inbound) {
	cmd := ParseCommand(in.Text, in.VoiceFileID)

	switch cmd.Kind {
	case KindNone:
		slog.Debug("Dropping empty update", "chat_id", in.ChatID)

	case KindReset:
		s.historySvc.Clear(in.ChatID)
		s.reply(in.ChatID, s.catalog.Get(messages.ResetDone))

	case KindHelp:
		s.reply(in.ChatID, s.catalog.Get(messages.Help))

	case KindTranslate:
		s.handleTranslate(ctx, in.ChatID, cmd.Arg)

	case KindSpeak:
		s.handleSpeak(ctx, in.ChatID, cmd.Arg)

	case KindRecognize:
		s.handleRecognize(ctx, in.ChatID, cmd.Arg)

	case KindChat:
		s.handleChat(ctx, in.ChatID, cmd.Arg)
	}
}

func (s *Service) handleTranslate(ctx context.Context, chatID int64, text string) {
	if s.translator == nil {
		s.reply(chatID, s.catalog.Get(messages.SpeechDisabled))
		return
	}

	if text == "" {
		s.reply(chatID, s.catalog.Get(messages.UsageTranslate))
		return
	}

	s.sender.SendTyping(chatID)

	result, err := s.translator.Translate(ctx, text)
	if err != nil {
		s.notifyFailure(chatID, "translate", err)
		return
	}

	s.reply(chatID, result)
}

func (s *Service) handleSpeak(ctx context.Context, chatID int64, text string) {
	if s.synthesizer == nil {
		s.reply(chatID, s.catalog.Get(messages.SpeechDisabled))
		return
	}

	if text == "" {
		s.reply(chatID, s.catalog.Get(messages.UsageTTS))
		return
	}

	s.sender.SendTyping(chatID)

	audio, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		s.notifyFailure(chatID, "tts", err)
		return
	}

	if err = s.sender.SendVoice(chatID, audio); err != nil {
		slog.Error("Failed to upload voice", "chat_id", chatID, "error", err)
		s.sender.SendNotice(chatID, s.catalog.ForFailure(failure.ClassUnknown))
	}
}

func (s *Service) handleRecognize(ctx context.Context, chatID int64, fileID string) {
	if s.recognizer == nil {
		s.reply(chatID, s.catalog.Get(messages.SpeechDisabled))
		return
	}

	s.sender.SendTyping(chatID)

	transcript, err := s.recognizer.Transcribe(ctx, fileID)
	if err != nil {
		s.notifyFailure(chatID, "stt", err)
		return
	}

	s.reply(chatID, s.catalog.Get(messages.TranscriptPrefix)+" "+transcript)
}

func (s *Service) handleChat(ctx context.Context, chatID int64, text string) {
	if s.replier == nil {
		s.reply(chatID, s.catalog.Get(messages.ChatDisabled))
		return
	}

	s.sender.SendTyping(chatID)

	result, err := s.replier.Generate(ctx, chatID, text)
	if err != nil {
		s.notifyFailure(chatID, "chat", err)
		return
	}

	s.reply(chatID, result)
}

func (s *Service) reply(chatID int64, text string) {
	if err := s.sender.SendText(chatID, text); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

func (s *Service) notifyFailure(chatID int64, op string, err error) {
	class := failure.Classify(err)

	slog.Error("Capability call failed",
		"op", op,
		"chat_id", chatID,
		"class", string(class),
		"error", err)

	s.sender.SendNotice(chatID, s.catalog.ForFailure(class))
}
