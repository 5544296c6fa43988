package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ironlady/crm-backend/internal/entity"
	"github.com/ironlady/crm-backend/internal/infra/integration/advisor"
)

const systemPrompt = "You are the Iron Lady Program Advisor, a warm and knowledgeable guide for women " +
	"exploring leadership programs (Leadership Masterclass, LEP, 1-Crore Club, 100 Board Members, MBW). " +
	"Answer questions about the programs, eligibility and outcomes. Be concise and encouraging."

// FallbackMessage is the single fixed reply shown to the caller when the
// stream fails for any reason. The underlying error is never exposed.
const FallbackMessage = "I'm sorry, I ran into a problem while answering. Please try sending your message again."

type SendMessageUseCase struct {
	ChatRepo entity.ChatRepositoryInterface
	Streamer CompletionStreamer
}

func NewSendMessageUseCase(chatRepo entity.ChatRepositoryInterface, streamer CompletionStreamer) *SendMessageUseCase {
	return &SendMessageUseCase{
		ChatRepo: chatRepo,
		Streamer: streamer,
	}
}

// Execute relays one user message and streams the reply into sink.
//
// Sequencing contract:
//  1. the conversation exists (created when conversationID is 0);
//  2. the user message is persisted BEFORE any completion call — if that
//     write fails the operation aborts and no assistant placeholder exists;
//  3. deltas are forwarded to sink in arrival order while accumulating;
//  4. on clean close the full text is persisted as one assistant message;
//  5. on any stream failure the partial text is discarded, nothing is
//     persisted, and sink receives only the fixed fallback message.
//
// There is no retry and no cancel path; a send runs to completion or failure.
func (uc *SendMessageUseCase) Execute(ctx context.Context, conversationID int64, content string, sink StreamSink) (*entity.Conversation, error) {
	conversation, err := uc.ensureConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.ChatRepo.CreateMessage(ctx, conversation.ID, entity.RoleUser, content); err != nil {
		return conversation, fmt.Errorf("persisting user message: %w", err)
	}

	history, err := uc.ChatRepo.GetMessagesByConversation(ctx, conversation.ID)
	if err != nil {
		return conversation, fmt.Errorf("loading conversation history: %w", err)
	}

	messages := make([]advisor.ChatMessage, 0, len(history)+1)
	messages = append(messages, advisor.ChatMessage{Role: "system", Content: systemPrompt})
	for _, m := range history {
		messages = append(messages, advisor.ChatMessage{Role: m.Role, Content: m.Content})
	}

	var full strings.Builder
	err = uc.Streamer.StreamCompletion(ctx, messages, func(delta string) error {
		full.WriteString(delta)
		return sink.Send(delta)
	})
	if err != nil {
		// Best effort: the connection may already be gone.
		sink.Send(FallbackMessage)
		return conversation, fmt.Errorf("completion stream: %w", err)
	}

	if _, err := uc.ChatRepo.CreateMessage(ctx, conversation.ID, entity.RoleAssistant, full.String()); err != nil {
		return conversation, fmt.Errorf("persisting assistant message: %w", err)
	}

	return conversation, nil
}

func (uc *SendMessageUseCase) ensureConversation(ctx context.Context, id int64) (*entity.Conversation, error) {
	if id == 0 {
		return uc.ChatRepo.CreateConversation(ctx, "New Conversation")
	}
	return uc.ChatRepo.GetConversation(ctx, id)
}
