package handlers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/ironlady/crm-backend/internal/contract"
	"github.com/ironlady/crm-backend/internal/entity"
	"github.com/ironlady/crm-backend/internal/infra/http/middleware"
	"github.com/ironlady/crm-backend/internal/infra/queue"
)

type LeadHandler struct {
	Repo     entity.LeadRepositoryInterface
	Producer queue.ProducerInterface // optional; nil disables follow-up events
}

func NewLeadHandler(repo entity.LeadRepositoryInterface, producer queue.ProducerInterface) *LeadHandler {
	return &LeadHandler{Repo: repo, Producer: producer}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Repo.GetAll(r.Context())
	if err != nil {
		log.Printf("❌ listing leads: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Lead not found")
		return
	}

	lead, err := h.Repo.GetByID(r.Context(), id)
	if err == entity.ErrNotFound {
		writeMessage(w, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		log.Printf("❌ fetching lead %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	validated, verr := contract.API["leads.create"].ValidateInput(body)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}
	input := validated.(contract.CreateLeadInput)

	lead := &entity.Lead{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		ProgramInterest: input.ProgramInterest,
		Status:          input.Status,
	}

	if err := h.Repo.Create(r.Context(), lead); err != nil {
		log.Printf("❌ creating lead: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.RecordLeadCaptured(lead.ProgramInterest)
	h.publishCaptured(r.Context(), lead)

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Lead not found")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	validated, verr := contract.API["leads.update"].ValidateInput(body)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}
	input := validated.(contract.UpdateLeadInput)

	lead, err := h.Repo.Update(r.Context(), id, entity.LeadUpdates{
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		ProgramInterest: input.ProgramInterest,
		Status:          input.Status,
	})
	if err == entity.ErrNotFound {
		writeMessage(w, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		log.Printf("❌ updating lead %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Delete cascades to the lead's applications and returns 204 whether or
// not the lead existed.
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		log.Printf("❌ deleting lead %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// publishCaptured hands the lead to the follow-up queue. Email is a
// courtesy, so a broken broker must not fail the create.
func (h *LeadHandler) publishCaptured(ctx context.Context, lead *entity.Lead) {
	if h.Producer == nil {
		return
	}

	payload := queue.LeadCapturedPayload{
		LeadID:  lead.ID,
		Name:    lead.Name,
		Email:   lead.Email,
		Program: lead.ProgramInterest,
	}
	if err := h.Producer.PublishLeadCaptured(ctx, payload); err != nil {
		log.Printf("⚠️ publishing lead.captured for lead %d: %v", lead.ID, err)
	}
}
