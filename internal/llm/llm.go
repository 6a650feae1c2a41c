// Package llm is the single outbound gateway to the DeepSeek
// chat-completion API (OpenAI-compatible wire format).
package llm

// Role tags a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one ordered turn of a conversation. The system message comes
// first and fixes the behavioral contract; the user message carries the
// task payload.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Request describes one chat-completion call. It is built fresh per call
// and never reused.
type Request struct {
	Messages []Message
	Model    string

	// APIKey, when set, overrides the process-wide default credential for
	// this call only.
	APIKey string

	Temperature *float64
	MaxTokens   *int64
}

// Usage is the provider's token accounting for a completed call.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// Completion is the read-only view over the provider response. The raw
// response is discarded after extraction.
type Completion struct {
	Content      string
	FinishReason string
	Usage        *Usage
}
