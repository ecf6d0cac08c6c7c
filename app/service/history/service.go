package history

import (
	"sync"

	"github.com/samber/do"
)

// maxTurns bounds every chat's history to the last 10 user/assistant pairs.
const maxTurns = 20

// Service keeps a bounded in-memory conversation history per chat.
// Nothing is persisted: a restart or /reset starts the chat from scratch.
type Service struct {
	mu    sync.RWMutex
	chats map[int64][]Turn
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		chats: make(map[int64][]Turn),
	}, nil
}

// Get returns a copy of the chat's history, oldest turn first.
func (s *Service) Get(chatID int64) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.chats[chatID]
	if len(turns) == 0 {
		return nil
	}

	result := make([]Turn, len(turns))
	copy(result, turns)

	return result
}

// Append adds a turn to the tail, dropping the oldest turns once
// the chat exceeds its bound.
func (s *Service) Append(chatID int64, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.chats[chatID], turn)
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}

	s.chats[chatID] = turns
}

// Clear drops the chat's history. Clearing an unknown chat is a no-op.
func (s *Service) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.chats, chatID)
}
