package speech

import (
	"context"
	"fmt"
	"speakmate/app/client/yandex"
	"speakmate/app/config"
	"time"

	"github.com/samber/do"
)

const maxCallDuration = 60 * time.Second

type Service struct {
	cfg    *config.Config
	client *yandex.Client
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:    do.MustInvoke[*config.Config](di),
		client: do.MustInvoke[*yandex.Client](di),
	}, nil
}

// Synthesize turns text into an OGG/Opus voice clip ready to be
// uploaded as a voice note.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, maxCallDuration)
	defer cancel()

	audio, err := s.client.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	return audio, nil
}
