package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/ironlady/crm-backend/internal/contract"
	"github.com/ironlady/crm-backend/internal/entity"
	"github.com/ironlady/crm-backend/internal/infra/http/middleware"
)

type ApplicationHandler struct {
	Repo entity.ApplicationRepositoryInterface
}

func NewApplicationHandler(repo entity.ApplicationRepositoryInterface) *ApplicationHandler {
	return &ApplicationHandler{Repo: repo}
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Repo.GetAll(r.Context())
	if err != nil {
		log.Printf("❌ listing applications: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Application not found")
		return
	}

	app, err := h.Repo.GetByID(r.Context(), id)
	if err == entity.ErrNotFound {
		writeMessage(w, http.StatusNotFound, "Application not found")
		return
	}
	if err != nil {
		log.Printf("❌ fetching application %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, app)
}

// Create accepts the application even when leadId points at nothing; the
// reference is surfaced as a missing lead on reads instead of an error.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	validated, verr := contract.API["applications.create"].ValidateInput(body)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}
	input := validated.(contract.CreateApplicationInput)

	app := &entity.Application{
		LeadID:  input.LeadID,
		Program: input.Program,
		Status:  input.Status,
		Notes:   input.Notes,
	}

	if err := h.Repo.Create(r.Context(), app); err != nil {
		log.Printf("❌ creating application: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.RecordApplicationSubmitted()

	writeJSON(w, http.StatusCreated, app)
}

func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Application not found")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Unable to read request body")
		return
	}

	validated, verr := contract.API["applications.update"].ValidateInput(body)
	if verr != nil {
		writeValidationError(w, verr)
		return
	}
	input := validated.(contract.UpdateApplicationInput)

	app, err := h.Repo.Update(r.Context(), id, entity.ApplicationUpdates{
		LeadID:  input.LeadID,
		Program: input.Program,
		Status:  input.Status,
		Notes:   input.Notes,
	})
	if err == entity.ErrNotFound {
		writeMessage(w, http.StatusNotFound, "Application not found")
		return
	}
	if err != nil {
		log.Printf("❌ updating application %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, app)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		log.Printf("❌ deleting application %d: %v", id, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
