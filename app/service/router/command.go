package router

import "strings"

type Kind int

const (
	// KindNone marks an update with nothing to act on; it is
	// acknowledged and dropped.
	KindNone Kind = iota
	KindReset
	KindHelp
	KindTranslate
	KindSpeak
	KindRecognize
	KindChat
)

// Command is the parsed form of an inbound message. Parsing is total:
// every update maps to exactly one kind, evaluated in fixed
// precedence order, so handlers cannot silently fall through.
type Command struct {
	Kind Kind
	Arg  string
}

func ParseCommand(text, voiceFileID string) Command {
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "/reset":
		return Command{Kind: KindReset}

	case strings.HasPrefix(trimmed, "/start"), strings.HasPrefix(trimmed, "/help"):
		return Command{Kind: KindHelp}

	case strings.HasPrefix(trimmed, "/translate"):
		return Command{
			Kind: KindTranslate,
			Arg:  strings.TrimSpace(strings.TrimPrefix(trimmed, "/translate")),
		}

	case strings.HasPrefix(trimmed, "/tts"):
		return Command{
			Kind: KindSpeak,
			Arg:  strings.TrimSpace(strings.TrimPrefix(trimmed, "/tts")),
		}

	case voiceFileID != "":
		return Command{Kind: KindRecognize, Arg: voiceFileID}

	case trimmed != "":
		return Command{Kind: KindChat, Arg: trimmed}

	default:
		return Command{Kind: KindNone}
	}
}
