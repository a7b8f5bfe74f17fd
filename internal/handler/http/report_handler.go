package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/report"
)

type ReportHandler struct {
	service report.Service
}

func NewReportHandler(service report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) RegisterRoutes(router chi.Router) {
	router.Get("/reports/dashboard", h.handleDashboard)
	router.Get("/reports/monthly", h.handleMonthly)
}

func (h *ReportHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeQuery(r, "from", false)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := parseTimeQuery(r, "to", true)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	productID := strings.TrimSpace(r.URL.Query().Get("product"))
	if productID == "" {
		productID = report.AllProducts
	}

	d, err := h.service.Dashboard(r.Context(), report.Filter{From: from, To: to, ProductID: productID})
	if err != nil {
		respondWithServiceError(w, err, "Failed to build dashboard")
		return
	}

	respondWithJSON(w, http.StatusOK, d)
}

func (h *ReportHandler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid year parameter")
		return
	}
	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid month parameter")
		return
	}

	s, err := h.service.Monthly(r.Context(), year, time.Month(month))
	if err != nil {
		respondWithServiceError(w, err, "Failed to build monthly summary")
		return
	}

	respondWithJSON(w, http.StatusOK, s)
}
