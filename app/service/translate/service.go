package translate

import (
	"context"
	"fmt"
	"speakmate/app/client/yandex"
	"speakmate/app/config"
	"time"

	"github.com/samber/do"
)

const maxCallDuration = 30 * time.Second

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

// Translate renders text into the configured target language.
func (s *Service) Translate(ctx context.Context, text string) (string, error) {
	return s.TranslateTo(ctx, text, s.cfg.Yandex.TargetLang)
}

func (s *Service) TranslateTo(ctx context.Context, text, targetLang string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, maxCallDuration)
	defer cancel()

	result, err := s.client.Translate(ctx, text, targetLang)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}

	return result, nil
}
