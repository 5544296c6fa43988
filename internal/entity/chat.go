package entity

import (
	"context"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Conversation struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one turn of a conversation. Insertion order defines
// conversation order; messages are never edited after creation.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	Role           string    `json:"role"` // user or assistant
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ChatRepositoryInterface interface {
	GetAllConversations(ctx context.Context) ([]*Conversation, error)
	GetConversation(ctx context.Context, id int64) (*Conversation, error)
	CreateConversation(ctx context.Context, title string) (*Conversation, error)
	GetMessagesByConversation(ctx context.Context, conversationID int64) ([]*Message, error)
	CreateMessage(ctx context.Context, conversationID int64, role, content string) (*Message, error)
}
