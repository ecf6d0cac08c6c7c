package history

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()

	svc, err := New(nil)
	require.NoError(t, err)

	return svc
}

func TestGetUnknownChat(t *testing.T) {
	svc := newService(t)

	assert.Empty(t, svc.Get(42))
}

func TestAppendKeepsOrder(t *testing.T) {
	svc := newService(t)

	svc.Append(1, Turn{Role: RoleUser, Text: "hello"})
	svc.Append(1, Turn{Role: RoleAssistant, Text: "hi"})

	turns := svc.Get(1)
	require.Len(t, turns, 2)
	assert.Equal(t, "hello", turns[0].Text)
	assert.Equal(t, "hi", turns[1].Text)
}

func TestAppendDropsOldest(t *testing.T) {
	svc := newService(t)

	for i := 0; i < 50; i++ {
		svc.Append(7, Turn{Role: RoleUser, Text: fmt.Sprintf("msg-%d", i)})
	}

	turns := svc.Get(7)
	require.Len(t, turns, 20)

	// the most recent 20 survive, in original relative order
	for i, turn := range turns {
		assert.Equal(t, fmt.Sprintf("msg-%d", 30+i), turn.Text)
	}
}

func TestChatsAreIsolated(t *testing.T) {
	svc := newService(t)

	svc.Append(1, Turn{Role: RoleUser, Text: "one"})
	svc.Append(2, Turn{Role: RoleUser, Text: "two"})

	require.Len(t, svc.Get(1), 1)
	assert.Equal(t, "two", svc.Get(2)[0].Text)
}

func TestClear(t *testing.T) {
	svc := newService(t)

	svc.Append(1, Turn{Role: RoleUser, Text: "hello"})
	svc.Clear(1)

	assert.Empty(t, svc.Get(1))

	// clearing a never-seen chat is a no-op
	svc.Clear(999)
	assert.Empty(t, svc.Get(999))
}

func TestGetReturnsCopy(t *testing.T) {
	svc := newService(t)

	svc.Append(1, Turn{Role: RoleUser, Text: "original"})

	turns := svc.Get(1)
	turns[0].Text = "mutated"

	assert.Equal(t, "original", svc.Get(1)[0].Text)
}

func TestConcurrentAccess(t *testing.T) {
	svc := newService(t)

	var wg sync.WaitGroup

	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			for i := 0; i < 100; i++ {
				svc.Append(1, Turn{Role: RoleUser, Text: fmt.Sprintf("w%d-%d", w, i)})

				if got := svc.Get(1); len(got) > 20 {
					t.Errorf("history exceeded bound: %d", len(got))
					return
				}
			}
		}(w)
	}

	wg.Wait()

	assert.Len(t, svc.Get(1), 20)
}
