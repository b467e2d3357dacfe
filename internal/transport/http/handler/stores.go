package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pacpro-api/internal/application/store"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/validate"
	"github.com/pacpro-api/internal/transport/http/middleware"
)

// StoreHandler handles store listing, admin CRUD and tombstone restore.
type StoreHandler struct {
	svc store.Service
}

func NewStoreHandler(svc store.Service) *StoreHandler {
	return &StoreHandler{svc: svc}
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.StoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := h.svc.Add(r.Context(), input)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.StoreID = chi.URLParam(r, "id")
	st, err := h.svc.Update(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), claims.Role); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "store deleted"})
}

func (h *StoreHandler) ListDeleted(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.svc.ListDeleted(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (h *StoreHandler) Restore(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
