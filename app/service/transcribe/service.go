package transcribe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"speakmate/app/client/telegram"
	"speakmate/app/client/yandex"
	"speakmate/app/config"
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

const (
	chunkSize       = 4096
	maxCallDuration = 2 * time.Minute
)

type Service struct {
	cfg      *config.Config
	tgClient *telegram.Client
	ycClient *yandex.Client
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:      do.MustInvoke[*config.Config](di),
		tgClient: do.MustInvoke[*telegram.Client](di),
		ycClient: do.MustInvoke[*yandex.Client](di),
	}, nil
}

// Transcribe downloads a voice note and streams it through the
// recognizer, returning the joined final phrases.
func (s *Service) Transcribe(ctx context.Context, fileID string) (string, error) {
	audio, err := s.tgClient.DownloadVoice(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch voice file: %w", err)
	}

	return s.TranscribeAudio(ctx, audio)
}

// TranscribeAudio recognizes an in-memory OGG/Opus clip.
func (s *Service) TranscribeAudio(ctx context.Context, audio []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, maxCallDuration)
	defer cancel()

	handle, err := s.ycClient.StartRecognition(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start recognition: %w", err)
	}
	defer handle.Close()

	var phrases []string

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.streamAudio(ctx, bytes.NewReader(audio), handle)
	})

	g.Go(func() error {
		return s.receivePhrases(ctx, handle, &phrases)
	})

	if err = g.Wait(); err != nil {
		return "", err
	}

	return strings.Join(phrases, " "), nil
}

func (s *Service) streamAudio(ctx context.Context, audioSrc io.Reader, handle *yandex.RecognitionHandle) error {
	if err := handle.SendConfig(s.cfg.Yandex.RecognitionLang); err != nil {
		return fmt.Errorf("failed to send audio config: %w", err)
	}

	buffer := make([]byte, chunkSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := audioSrc.Read(buffer)
		if n > 0 {
			if sendErr := handle.Send(buffer[:n]); sendErr != nil {
				return fmt.Errorf("failed to send audio: %w", sendErr)
			}
		}

		if errors.Is(err, io.EOF) {
			return handle.CloseSend()
		}
		if err != nil {
			return fmt.Errorf("failed to read audio: %w", err)
		}
	}
}

// receivePhrases keeps the top alternative of every finalized
// segment until the recognizer closes the stream.
func (s *Service) receivePhrases(ctx context.Context, handle *yandex.RecognitionHandle, out *[]string) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sentences, err := handle.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to receive recognition event: %w", err)
		}

		if best := pie.FirstOr(sentences, ""); best != "" {
			*out = append(*out, best)
		}
	}
}
