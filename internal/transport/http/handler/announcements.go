package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pacpro-api/internal/application/announcement"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/validate"
	"github.com/pacpro-api/internal/transport/http/middleware"
)

// AnnouncementHandler handles role-targeted announcements.
type AnnouncementHandler struct {
	svc announcement.Service
}

func NewAnnouncementHandler(svc announcement.Service) *AnnouncementHandler {
	return &AnnouncementHandler{svc: svc}
}

// List returns the announcements visible to the caller's role.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	announcements, err := h.svc.ListForRole(r.Context(), claims.Role)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var input domain.AnnouncementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.svc.Add(r.Context(), input, claims.Email)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "announcement deleted"})
}
