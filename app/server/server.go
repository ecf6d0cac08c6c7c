package server

import (
	"context"
	"speakmate/app/client/telegram"
	"speakmate/app/config"
	"speakmate/app/service/dispatch"
	"speakmate/app/service/history"
	"speakmate/app/service/reply"
	"speakmate/app/service/speech"
	"speakmate/app/service/transcribe"
	"speakmate/app/service/translate"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

type Dispatcher interface {
	Add(in telegram.Inbound)
}

type translator interface {
	TranslateTo(ctx context.Context, text, targetLang string) (string, error)
}

type replier interface {
	GenerateStateless(ctx context.Context, turns []history.Turn, text string) (string, error)
}

type synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type recognizer interface {
	TranscribeAudio(ctx context.Context, audio []byte) (string, error)
}

type Server struct {
	cfg        *config.Config
	app        *fiber.App
	dispatcher Dispatcher
	validate   *validator.Validate
	startTime  time.Time

	// nil when the corresponding credentials are absent
	translator  translator
	replier     replier
	synthesizer synthesizer
	recognizer  recognizer
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:        do.MustInvoke[*config.Config](di),
		dispatcher: do.MustInvoke[*dispatch.Service](di),
	}

	if svc, err := do.Invoke[*translate.Service](di); err == nil {
		s.translator = svc
	}
	if svc, err := do.Invoke[*reply.Service](di); err == nil {
		s.replier = svc
	}
	if svc, err := do.Invoke[*speech.Service](di); err == nil {
		s.synthesizer = svc
	}
	if svc, err := do.Invoke[*transcribe.Service](di); err == nil {
		s.recognizer = svc
	}

	s.init()

	return s, nil
}

func (s *Server) init() {
	s.validate = validator.New(validator.WithRequiredStructEnabled())
	s.startTime = time.Now()
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.app.Post("/", s.handleWebhook)
	s.app.Get("/health", s.handleHealth)

	v1 := s.app.Group("/api/v1")
	v1.Post("/translate", s.handleTranslate)
	v1.Post("/chat", s.handleChat)
	v1.Post("/stt", s.handleSTT)
	v1.Post("/tts", s.handleTTS)
}

func (s *Server) Run() error {
	return s.app.Listen(s.cfg.HTTP.Addr)
}

func (s *Server) Shutdown() error {
	return s.app.ShutdownWithTimeout(5 * time.Second)
}
