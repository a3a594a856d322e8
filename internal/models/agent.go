package models

type MemoryStrategy string

const (
	MemoryAllMessages         MemoryStrategy = "allMessages"
	MemoryWindowSize          MemoryStrategy = "windowSize"
	MemoryConversationSummary MemoryStrategy = "conversationSummary"
)

// Valid reports whether m is one of the strategies the platform understands.
func (m MemoryStrategy) Valid() bool {
	switch m {
	case MemoryAllMessages, MemoryWindowSize, MemoryConversationSummary:
		return true
	}
	return false
}

type Position struct {
	X float64 `json:"x" yaml:"x" hcl:"x"`
	Y float64 `json:"y" yaml:"y" hcl:"y"`
}

// AgentSpec is the static description of one agent node.
type AgentSpec struct {
	ID           int            `yaml:"id"`
	Label        string         `yaml:"label"`
	Position     Position       `yaml:"position"`
	Persona      string         `yaml:"persona"`
	Temperature  float64        `yaml:"temperature"`
	Memory       MemoryStrategy `yaml:"memory"`
	MemoryWindow *int           `yaml:"memory_window,omitempty"`
}

// HasWindow reports whether the agent declares a memory window size.
func (a AgentSpec) HasWindow() bool {
	return a.MemoryWindow != nil
}
