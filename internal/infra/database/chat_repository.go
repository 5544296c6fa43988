package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ironlady/crm-backend/internal/entity"
)

type ChatRepository struct {
	DB *sql.DB
}

func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) GetAllConversations(ctx context.Context) ([]*entity.Conversation, error) {
	query := "SELECT id, title, created_at FROM conversations ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []*entity.Conversation{}
	for rows.Next() {
		var c entity.Conversation
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, &c)
	}

	return conversations, rows.Err()
}

func (r *ChatRepository) GetConversation(ctx context.Context, id int64) (*entity.Conversation, error) {
	query := "SELECT id, title, created_at FROM conversations WHERE id = $1"

	var c entity.Conversation
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Title, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *ChatRepository) CreateConversation(ctx context.Context, title string) (*entity.Conversation, error) {
	query := "INSERT INTO conversations (title) VALUES ($1) RETURNING id, created_at"

	c := entity.Conversation{Title: title}
	if err := r.DB.QueryRowContext(ctx, query, title).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

// GetMessagesByConversation returns messages in insertion order, which is
// the conversation order.
func (r *ChatRepository) GetMessagesByConversation(ctx context.Context, conversationID int64) ([]*entity.Message, error) {
	query := `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*entity.Message{}
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}

func (r *ChatRepository) CreateMessage(ctx context.Context, conversationID int64, role, content string) (*entity.Message, error) {
	query := `
		INSERT INTO messages (conversation_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	m := entity.Message{
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
	}
	if err := r.DB.QueryRowContext(ctx, query, conversationID, role, content).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, err
	}

	return &m, nil
}
