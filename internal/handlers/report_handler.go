package handlers

import (
	"fmt"
	"net/http"
	"time"

	"roastery-backend/internal/services"
	"roastery-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func downloadName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("2006-01-02"), ext)
}

// PeriodPDF downloads the period sales report as a PDF.
func (h *ReportHandler) PeriodPDF(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStatsFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	data, err := h.Service.GeneratePeriodPDF(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName("sales_report", "pdf")))
	w.Write(data)
}

// PeriodCSV downloads the period sales report as CSV.
func (h *ReportHandler) PeriodCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStatsFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	data, err := h.Service.GeneratePeriodCSV(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName("sales_report", "csv")))
	w.Write(data)
}

// TransactionsCSV downloads the raw transaction list for the period.
func (h *ReportHandler) TransactionsCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	data, err := h.Service.GenerateTransactionsCSV(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName("transactions", "csv")))
	w.Write(data)
}
