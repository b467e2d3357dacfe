package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pacpro-api/internal/application/report"
)

// ReportHandler handles monthly totals reads and the recompute backfill.
type ReportHandler struct {
	svc report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.MonthlyTotals(r.Context(), chi.URLParam(r, "storeID"), chi.URLParam(r, "yearMonth"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func (h *ReportHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Backfill(r.Context(), r.URL.Query().Get("storeID"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CountEnvelope{Count: count, Message: "monthly totals recomputed"})
}
