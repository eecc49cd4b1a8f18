package liveview

// MessageType discriminates messages pushed to review pages.
type MessageType string

// Message types
const (
	// MessageEval carries a script the page evaluates as is.
	MessageEval MessageType = "eval"
	// MessageNotice carries a user-facing notification.
	MessageNotice MessageType = "notice"
)

// Notice levels
const (
	// LevelTooltip is a transient status message.
	LevelTooltip = "tooltip"
	// LevelInfo is a blocking informational dialog.
	LevelInfo = "info"
)

// Message is the JSON envelope sent over the socket.
type Message struct {
	Type    MessageType `json:"type"`
	Script  string      `json:"script,omitempty"`
	Level   string      `json:"level,omitempty"`
	Message string      `json:"message,omitempty"`
}
