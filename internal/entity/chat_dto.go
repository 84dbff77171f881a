package entity

// ChatMessage is one turn of conversation history supplied by the widget.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "model"
	Content string `json:"content"`
}

// ChatRequest is the body of a chat turn against a bot.
type ChatRequest struct {
	BotID    string        `json:"-"`
	Messages []ChatMessage `json:"messages"`
}

// StreamEventType discriminates server-sent events on the chat stream.
type StreamEventType string

const (
	StreamEventDelta StreamEventType = "delta" // incremental answer text
	StreamEventTool  StreamEventType = "tool"  // retrieval tool invoked
	StreamEventDone  StreamEventType = "done"  // model reported finish
	StreamEventError StreamEventType = "error" // retryable failure
)

// StreamEvent is one server-sent event emitted while answering a chat turn.
type StreamEvent struct {
	Type StreamEventType `json:"type"`
	Text string          `json:"text,omitempty"`
}

// ToolCall is the retrieval tool invocation the model makes mid-generation.
type ToolCall struct {
	Name     string
	Question string
	BotID    string
}

// StreamParams is one answering run against the model.
type StreamParams struct {
	SystemPrompt string
	BotID        string
	Messages     []ChatMessage
}

// StreamCallbacks receives model output as it is produced. OnDelta gets each
// text fragment; OnTool executes a retrieval call and returns the knowledge
// fed back to the model. A callback error aborts the stream.
type StreamCallbacks struct {
	OnDelta func(text string) error
	OnTool  func(call ToolCall) (string, error)
}
