package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pacpro-api/internal/application/invoice"
	"github.com/pacpro-api/internal/domain"
	"github.com/pacpro-api/internal/pkg/validate"
	"github.com/pacpro-api/internal/transport/http/middleware"
)

// 10 MB cap on the multipart form; invoice photos are phone camera shots.
const maxInvoiceFormSize = 10 << 20

// InvoiceHandler handles invoice submission, listing and deletion.
type InvoiceHandler struct {
	svc invoice.Service
}

func NewInvoiceHandler(svc invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// Submit accepts a multipart form: an optional "image" file part plus the
// invoice fields. The submitter is taken from the JWT, not the form, so a
// client cannot submit on someone else's behalf.
func (h *InvoiceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxInvoiceFormSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := domain.SubmitInvoiceRequest{
		UserEmail:     claims.Email,
		InvoiceNumber: r.FormValue("invoiceNumber"),
		CompanyName:   r.FormValue("companyName"),
		StoreID:       r.FormValue("storeID"),
		InvoiceDate:   r.FormValue("invoiceDate"),
	}
	req.TargetMonth, _ = strconv.Atoi(r.FormValue("targetMonth"))
	req.TargetYear, _ = strconv.Atoi(r.FormValue("targetYear"))
	if raw := r.FormValue("categories"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Categories); err != nil {
			writeError(w, http.StatusBadRequest, "categories must be a JSON object")
			return
		}
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var image io.Reader
	var filename string
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		image = file
		filename = header.Filename
	}

	inv, err := h.svc.Submit(r.Context(), req, image, filename)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("storeID")
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	invoices, err := h.svc.List(r.Context(), storeID, month, year)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "invoice deleted"})
}
