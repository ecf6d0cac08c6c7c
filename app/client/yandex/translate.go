package yandex

import (
	"context"
	"fmt"
	"strings"

	translatepb "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/translate/v2"
)

func (y *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	resp, err := y.sdk.AI().Translate().Translation().Translate(ctx, &translatepb.TranslateRequest{
		FolderId:           y.cfg.Yandex.FolderID,
		Texts:              []string{text},
		TargetLanguageCode: targetLang,
		Format:             translatepb.TranslateRequest_PLAIN_TEXT,
	})
	if err != nil {
		return "", fmt.Errorf("failed to translate: %w", err)
	}

	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("no translations found")
	}

	return strings.TrimSpace(resp.Translations[0].Text), nil
}
