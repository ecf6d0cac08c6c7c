package yandex

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yandex-cloud/go-genproto/yandex/cloud/ai/tts/v3"
)

// Synthesize renders text into an OGG/Opus voice clip.
func (y *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, err := y.authorize(ctx)
	if err != nil {
		return nil, err
	}

	var voiceHint tts.Hints
	voiceHint.SetVoice(y.cfg.Yandex.Voice)

	var audioFormatOpts tts.AudioFormatOptions
	audioFormatOpts.SetContainerAudio(&tts.ContainerAudio{
		ContainerAudioType: tts.ContainerAudio_OGG_OPUS,
	})

	var req tts.UtteranceSynthesisRequest
	req.SetText(text)
	req.SetHints([]*tts.Hints{&voiceHint})
	req.SetOutputAudioSpec(&audioFormatOpts)

	stream, err := tts.NewSynthesizerClient(y.ttsConn).UtteranceSynthesis(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to start synthesis: %w", err)
	}

	var audio []byte

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to receive audio: %w", err)
		}

		audio = append(audio, resp.GetAudioChunk().GetData()...)
	}

	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis produced no audio")
	}

	return audio, nil
}
