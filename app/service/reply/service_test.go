package reply

import (
	"context"
	"errors"
	"speakmate/app/config"
	"speakmate/app/service/history"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompletions struct {
	response string
	err      error

	gotMessages []openai.ChatCompletionMessage
}

func (f *fakeCompletions) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotMessages = req.Messages

	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}

	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.response}},
		},
	}, nil
}

func newTestService(t *testing.T, client completionClient) (*Service, *history.Service) {
	t.Helper()

	historySvc, err := history.New(nil)
	require.NoError(t, err)

	return &Service{
		cfg:        &config.Config{},
		historySvc: historySvc,
		client:     client,
		model:      "test-model",
	}, historySvc
}

func TestGenerateCommitsTurnsOnSuccess(t *testing.T) {
	client := &fakeCompletions{response: "  hi there  "}
	svc, historySvc := newTestService(t, client)

	result, err := svc.Generate(context.Background(), 42, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", result)

	turns := historySvc.Get(42)
	require.Len(t, turns, 2)
	assert.Equal(t, history.RoleUser, turns[0].Role)
	assert.Equal(t, "hello", turns[0].Text)
	assert.Equal(t, history.RoleAssistant, turns[1].Role)
	assert.Equal(t, "hi there", turns[1].Text)
}

func TestGenerateFailureLeavesHistoryUntouched(t *testing.T) {
	client := &fakeCompletions{err: errors.New("boom")}
	svc, historySvc := newTestService(t, client)

	_, err := svc.Generate(context.Background(), 42, "hello")
	require.Error(t, err)

	assert.Empty(t, historySvc.Get(42))
}

func TestGenerateSendsHistoryAsContext(t *testing.T) {
	client := &fakeCompletions{response: "ok"}
	svc, historySvc := newTestService(t, client)

	historySvc.Append(1, history.Turn{Role: history.RoleUser, Text: "first"})
	historySvc.Append(1, history.Turn{Role: history.RoleAssistant, Text: "second"})

	_, err := svc.Generate(context.Background(), 1, "third")
	require.NoError(t, err)

	// system prompt + 2 history turns + current message
	require.Len(t, client.gotMessages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, client.gotMessages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, client.gotMessages[1].Role)
	assert.Equal(t, "first", client.gotMessages[1].Content)
	assert.Equal(t, openai.ChatMessageRoleAssistant, client.gotMessages[2].Role)
	assert.Equal(t, "third", client.gotMessages[3].Content)
}

// a response with zero choices is an error, not an empty reply
func TestGenerateNoChoices(t *testing.T) {
	svc, _ := newTestService(t, emptyChoices{})

	_, err := svc.Generate(context.Background(), 1, "hello")
	require.Error(t, err)
}

type emptyChoices struct{}

func (emptyChoices) CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}

func TestGenerateStatelessSkipsStore(t *testing.T) {
	client := &fakeCompletions{response: "reply"}
	svc, historySvc := newTestService(t, client)

	turns := []history.Turn{{Role: history.RoleUser, Text: "earlier"}}

	result, err := svc.GenerateStateless(context.Background(), turns, "prompt")
	require.NoError(t, err)
	assert.Equal(t, "reply", result)

	assert.Empty(t, historySvc.Get(0))
	require.Len(t, client.gotMessages, 3)
}
