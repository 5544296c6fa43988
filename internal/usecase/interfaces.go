package usecase

import (
	"context"

	"github.com/ironlady/crm-backend/internal/infra/integration/advisor"
)

// CompletionStreamer is the outbound side of the chat relay.
type CompletionStreamer interface {
	StreamCompletion(ctx context.Context, messages []advisor.ChatMessage, onDelta func(string) error) error
}

// StreamSink is the inbound side: whatever carries deltas back to the
// caller (an SSE response in production, a buffer in tests).
type StreamSink interface {
	Send(delta string) error
}
