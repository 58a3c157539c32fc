package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatRole distinguishes who wrote a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ToolCall is a structured mutation request emitted by the assistant
// model in lieu of free text. Transient; embedded into the assistant's
// ChatMessage for the record, never stored as its own entity.
type ToolCall struct {
	Name string         `bson:"name" json:"name"`
	Args map[string]any `bson:"args,omitempty" json:"args,omitempty"`
}

// ToolResult is the uniform outcome of executing one tool call.
type ToolResult struct {
	Name    string `bson:"name" json:"name"`
	Success bool   `bson:"success" json:"success"`
	Result  string `bson:"result,omitempty" json:"result,omitempty"`
	Error   string `bson:"error,omitempty" json:"error,omitempty"`
}

// ChatMessage is one entry in a user's append-only conversation log.
// Messages are immutable once written.
type ChatMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Role        ChatRole           `bson:"role" json:"role"`
	Content     string             `bson:"content" json:"content"`
	ToolCalls   []ToolCall         `bson:"toolCalls,omitempty" json:"toolCalls,omitempty"`
	ToolResults []ToolResult       `bson:"toolResults,omitempty" json:"toolResults,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
