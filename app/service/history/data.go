package history

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a conversation, immutable once stored.
type Turn struct {
	Role Role
	Text string
}
