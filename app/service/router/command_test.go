package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		voice string
		want  Command
	}{
		{name: "reset", text: "/reset", want: Command{Kind: KindReset}},
		{name: "reset with padding", text: "  /reset  ", want: Command{Kind: KindReset}},
		{name: "reset suffix is not reset", text: "/resetXYZ", want: Command{Kind: KindChat, Arg: "/resetXYZ"}},
		{name: "help", text: "/help", want: Command{Kind: KindHelp}},
		{name: "start", text: "/start", want: Command{Kind: KindHelp}},
		{name: "translate", text: "/translate hello world", want: Command{Kind: KindTranslate, Arg: "hello world"}},
		{name: "translate empty", text: "/translate", want: Command{Kind: KindTranslate, Arg: ""}},
		{name: "translate whitespace only", text: "/translate    ", want: Command{Kind: KindTranslate, Arg: ""}},
		{name: "tts", text: "/tts good morning", want: Command{Kind: KindSpeak, Arg: "good morning"}},
		{name: "tts empty", text: "/tts", want: Command{Kind: KindSpeak, Arg: ""}},
		{name: "voice", voice: "file-123", want: Command{Kind: KindRecognize, Arg: "file-123"}},
		{name: "command beats voice", text: "/help", voice: "file-123", want: Command{Kind: KindHelp}},
		{name: "free text", text: "how are you?", want: Command{Kind: KindChat, Arg: "how are you?"}},
		{name: "nothing", want: Command{Kind: KindNone}},
		{name: "blank text", text: "   ", want: Command{Kind: KindNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCommand(tt.text, tt.voice))
		})
	}
}
