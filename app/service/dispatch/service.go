package dispatch

import (
	"context"
	"log/slog"
	"speakmate/app/client/telegram"
	"speakmate/app/messages"
	"speakmate/app/service/router"
	"time"

	"github.com/samber/do"
)

const (
	bufferSize  = 64
	workerCount = 4
)

var _ do.Shutdownable = (*Service)(nil)

type notifier interface {
	SendNotice(chatID int64, text string)
}

// Handler consumes one inbound update; the command router is the
// production implementation.
type Handler interface {
	Handle(ctx context.Context, in telegram.Inbound)
}

// Service decouples the webhook acknowledgement from message
// processing: the front door enqueues and returns, workers drain.
type Service struct {
	handler  Handler
	notifier notifier
	catalog  *messages.Catalog

	queue chan telegram.Inbound
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		handler:  do.MustInvoke[*router.Service](di),
		notifier: do.MustInvoke[*telegram.Client](di),
		catalog:  do.MustInvoke[*messages.Catalog](di),
		queue:    make(chan telegram.Inbound, bufferSize),
	}, nil
}

// Add never blocks: the update is dropped with a warning when the
// queue is full, and the platform's at-least-once delivery is
// expected to bring it back.
func (s *Service) Add(in telegram.Inbound) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Enqueue after shutdown", "chat_id", in.ChatID)
		}
	}()

	select {
	case s.queue <- in:
	default:
		slog.Warn("Update queue is full, dropping update", "chat_id", in.ChatID)
	}
}

func (s *Service) Run(ctx context.Context) {
	for i := 0; i < workerCount; i++ {
		go s.worker(ctx)
	}

	<-ctx.Done()
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case in, ok := <-s.queue:
			if !ok {
				return
			}

			s.process(ctx, in)
		}
	}
}

// process is the outermost boundary of a detached unit of work:
// a panic here must not take the worker down or reach the already
// acknowledged request.
func (s *Service) process(ctx context.Context, in telegram.Inbound) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic while processing update",
				"chat_id", in.ChatID,
				"panic", r,
				"telegram", true)

			s.notifier.SendNotice(in.ChatID, s.catalog.Get("err_unknown"))
		}
	}()

	start := time.Now()
	s.handler.Handle(ctx, in)

	slog.Info("Processed update",
		"chat_id", in.ChatID,
		"duration", time.Since(start))
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
