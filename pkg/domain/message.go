package domain

// Role identifies the author of a transcript entry
type Role string

// transcript roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Valid reports whether the role is one of the known transcript roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem, RoleTool:
		return true
	}
	return false
}

// Message is a single transcript entry. Messages are never mutated once created.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
