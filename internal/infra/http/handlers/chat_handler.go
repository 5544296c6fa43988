package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ironlady/crm-backend/internal/contract"
	"github.com/ironlady/crm-backend/internal/entity"
	"github.com/ironlady/crm-backend/internal/infra/http/middleware"
	"github.com/ironlady/crm-backend/internal/usecase"
)

type ChatHandler struct {
	Repo   entity.ChatRepositoryInterface
	SendUC *usecase.SendMessageUseCase
}

func NewChatHandler(repo entity.ChatRepositoryInterface, sendUC *usecase.SendMessageUseCase) *ChatHandler {
	return &ChatHandler{Repo: repo, SendUC: sendUC}
}

func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.Repo.GetAllConversations(r.Context())
	if err != nil {
		log.Printf("❌ listing conversations: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, conversations)
}

func (h *ChatHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Conversation not found")
		return
	}

	conversation, err := h.Repo.GetConversation(r.Context(), id)
	if err == entity.ErrNotFound {
		writeMessage(w, http.StatusNotFound, "Conversation not found")
		return
	}
	if err != nil {
		log.Printf("❌ fetching conversation %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	messages, err := h.Repo.GetMessagesByConversation(r.Context(), id)
	if err != nil {
		log.Printf("❌ fetching messages for conversation %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		*entity.Conversation
		Messages []*entity.Message `json:"messages"`
	}{conversation, messages})
}

func (h *ChatHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	validated, verr := contract.API["conversations.create"].ValidateInput(body)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}
	input := validated.(contract.CreateConversationInput)

	conversation, err := h.Repo.CreateConversation(r.Context(), input.Title)
	if err != nil {
		log.Printf("❌ creating conversation: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, conversation)
}

// SendMessage relays one user message and streams the assistant reply as
// SSE frames (`data: {"content":"<delta>"}`). A conversation id of 0 (or
// an unparsable one) starts a fresh conversation.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	validated, verr := contract.API["conversations.send"].ValidateInput(body)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}
	input := validated.(contract.SendMessageInput)

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	sink := &sseSink{w: w, flusher: flusher}
	middleware.RecordChatStream()

	_, err = h.SendUC.Execute(r.Context(), conversationID, input.Content, sink)
	if err != nil {
		middleware.RecordChatStreamError()

		// Headers not sent yet: the failure happened before streaming, so
		// a normal JSON error is still possible.
		if !sink.started {
			if errors.Is(err, entity.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, "Conversation not found")
				return
			}
			log.Printf("❌ chat send failed before streaming: %v", err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		// Mid-stream failure: the fallback frame has already been sent.
		log.Printf("❌ chat stream failed: %v", err)
	}
}

// sseSink writes deltas as SSE frames. Headers go out lazily on the first
// frame so pre-stream failures can still use plain JSON status codes.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
	started bool
}

func (s *sseSink) Send(delta string) error {
	if !s.started {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.started = true
	}

	payload, err := json.Marshal(map[string]string{"content": delta})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
