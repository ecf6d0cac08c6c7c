package yandex

import (
	"context"
	"fmt"
	"strings"

	"github.com/yandex-cloud/go-genproto/yandex/cloud/ai/stt/v3"
)

// StartRecognition opens a streaming recognizer session.
func (y *Client) StartRecognition(ctx context.Context) (*RecognitionHandle, error) {
	ctx, cancel := context.WithCancel(ctx)

	client, err := y.sdk.AI().STTV3().Recognizer().RecognizeStreaming(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create recognizer client: %w", err)
	}

	return &RecognitionHandle{
		client: client,
		cancel: cancel,
	}, nil
}

type RecognitionHandle struct {
	client stt.Recognizer_RecognizeStreamingClient
	cancel context.CancelFunc
}

// SendConfig must be the first frame of the session. Voice notes
// arrive as OGG/Opus containers, so container audio is used instead
// of raw PCM.
func (h *RecognitionHandle) SendConfig(language string) error {
	var audioFormatOpts stt.AudioFormatOptions
	audioFormatOpts.SetContainerAudio(&stt.ContainerAudio{
		ContainerAudioType: stt.ContainerAudio_OGG_OPUS,
	})

	var req stt.StreamingRequest
	req.SetSessionOptions(&stt.StreamingOptions{
		RecognitionModel: &stt.RecognitionModelOptions{
			Model:       "general",
			AudioFormat: &audioFormatOpts,
			LanguageRestriction: &stt.LanguageRestrictionOptions{
				RestrictionType: stt.LanguageRestrictionOptions_WHITELIST,
				LanguageCode:    []string{language},
			},
		},
	})

	return h.client.Send(&req)
}

func (h *RecognitionHandle) Send(content []byte) error {
	var req stt.StreamingRequest
	req.SetChunk(&stt.AudioChunk{
		Data: content,
	})

	return h.client.Send(&req)
}

// CloseSend tells the recognizer the audio is complete.
func (h *RecognitionHandle) CloseSend() error {
	return h.client.CloseSend()
}

// Recv returns the next batch of finalized phrases. A nil slice
// with nil error means a non-final event was skipped.
func (h *RecognitionHandle) Recv() ([]string, error) {
	res, err := h.client.Recv()
	if err != nil {
		return nil, err
	}

	finalEvent := res.GetFinal()
	if finalEvent == nil {
		return nil, nil
	}

	result := make([]string, 0, len(finalEvent.Alternatives))
	for _, alt := range finalEvent.Alternatives {
		text := strings.TrimSpace(alt.Text)
		if text == "" {
			continue
		}

		result = append(result, text)
	}

	return result, nil
}

func (h *RecognitionHandle) Close() error {
	h.cancel()
	return nil
}
