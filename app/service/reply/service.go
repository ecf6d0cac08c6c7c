package reply

import (
	"context"
	"fmt"
	"net/http"
	"speakmate/app/config"
	"speakmate/app/service/history"
	"strings"
	"time"

	_ "embed"

	"github.com/samber/do"
	"github.com/sashabaranov/go-openai"
)

//go:embed system_prompt.txt
var systemPrompt string

const (
	maxReasonDuration = 30 * time.Second
	maxReplyTokens    = 500
)

type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Service struct {
	cfg        *config.Config
	historySvc *history.Service

	client completionClient
	model  string
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return &Service{
		cfg:        cfg,
		historySvc: do.MustInvoke[*history.Service](di),
		client:     createClient(cfg.OpenAI),
		model:      cfg.OpenAI.Model,
	}, nil
}

func createClient(cfg config.OpenAI) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.Token)

	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	return openai.NewClientWithConfig(clientConfig)
}

// Generate produces the assistant's reply for one user message.
// The conversation is committed to the store only after the model
// call succeeds, so a failed turn leaves no trace.
func (s *Service) Generate(ctx context.Context, chatID int64, text string) (string, error) {
	result, err := s.complete(ctx, s.historySvc.Get(chatID), text)
	if err != nil {
		return "", err
	}

	s.historySvc.Append(chatID, history.Turn{Role: history.RoleUser, Text: text})
	s.historySvc.Append(chatID, history.Turn{Role: history.RoleAssistant, Text: result})

	return result, nil
}

// GenerateStateless answers with caller-supplied history and leaves
// the store untouched; the REST surface uses it.
func (s *Service) GenerateStateless(ctx context.Context, turns []history.Turn, text string) (string, error) {
	return s.complete(ctx, turns, text)
}

func (s *Service) complete(ctx context.Context, turns []history.Turn, text string) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(turns)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	for _, turn := range turns {
		role := openai.ChatMessageRoleUser
		if turn.Role == history.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}

		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Text,
		})
	}

	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})

	ctx, cancel := context.WithTimeout(ctx, maxReasonDuration)
	defer cancel()

	aiResponse, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:               s.model,
			Messages:            msgs,
			MaxCompletionTokens: maxReplyTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(aiResponse.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	return strings.TrimSpace(aiResponse.Choices[0].Message.Content), nil
}
