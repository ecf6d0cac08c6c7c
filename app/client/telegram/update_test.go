package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUpdateText(t *testing.T) {
	body := []byte(`{"update_id":1,"message":{"message_id":10,"chat":{"id":42},"text":"/translate hello"}}`)

	in, ok, err := ParseUpdate(body)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, int64(42), in.ChatID)
	assert.Equal(t, "/translate hello", in.Text)
	assert.Empty(t, in.VoiceFileID)
}

func TestParseUpdateVoice(t *testing.T) {
	body := []byte(`{"update_id":2,"message":{"message_id":11,"chat":{"id":7},"voice":{"file_id":"abc","duration":3}}}`)

	in, ok, err := ParseUpdate(body)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, int64(7), in.ChatID)
	assert.Equal(t, "abc", in.VoiceFileID)
}

func TestParseUpdateNoMessage(t *testing.T) {
	_, ok, err := ParseUpdate([]byte(`{"update_id":3}`))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseUpdateNoContent(t *testing.T) {
	body := []byte(`{"update_id":4,"message":{"message_id":12,"chat":{"id":7},"sticker":{"file_id":"s"}}}`)

	_, ok, err := ParseUpdate(body)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseUpdateMalformed(t *testing.T) {
	_, ok, err := ParseUpdate([]byte(`not json`))
	require.Error(t, err)
	assert.False(t, ok)
}
