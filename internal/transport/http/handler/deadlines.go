package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pacpro-api/internal/application/deadline"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/validate"
)

// Upcoming deadlines window shown by the dashboard widget.
const upcomingWindow = 30 * 24 * time.Hour

// DeadlineHandler handles deadline listing and admin CRUD.
type DeadlineHandler struct {
	svc deadline.Service
}

func NewDeadlineHandler(svc deadline.Service) *DeadlineHandler {
	return &DeadlineHandler{svc: svc}
}

func (h *DeadlineHandler) List(w http.ResponseWriter, r *http.Request) {
	deadlines, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deadlines)
}

func (h *DeadlineHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	deadlines, err := h.svc.Upcoming(r.Context(), time.Now().UTC(), upcomingWindow)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deadlines)
}

func (h *DeadlineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.DeadlineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.svc.Add(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DeadlineHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input domain.DeadlineInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DeadlineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "deadline deleted"})
}
