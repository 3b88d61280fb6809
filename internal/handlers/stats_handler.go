package handlers

import (
	"net/http"

	"roastery-backend/internal/models"
	"roastery-backend/internal/services"
	"roastery-backend/internal/timeutil"
	"roastery-backend/pkg/utils"
)

type StatsHandler struct {
	Service *services.StatsService
}

func NewStatsHandler(s *services.StatsService) *StatsHandler {
	return &StatsHandler{Service: s}
}

// parseStatsFilter reads from/to (inclusive dates), point_id and
// category_id query parameters.
func parseStatsFilter(r *http.Request) (models.StatsFilter, error) {
	var filter models.StatsFilter

	filter.PointID = parseIntParam(r, "point_id")
	filter.CategoryID = parseIntParam(r, "category_id")

	from, err := timeutil.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		return filter, err
	}
	if from != nil {
		start := timeutil.StartOfDay(*from)
		filter.From = &start
	}

	to, err := timeutil.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		return filter, err
	}
	if to != nil {
		end := timeutil.EndOfDay(*to)
		filter.To = &end
	}
	return filter, nil
}

func (h *StatsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStatsFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	summary, err := h.Service.Revenue(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

func (h *StatsHandler) Payments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStatsFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	totals, err := h.Service.Payments(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, totals)
}

func (h *StatsHandler) Products(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStatsFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	totals, err := h.Service.Products(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, totals)
}

func (h *StatsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStatsFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	totals, err := h.Service.Categories(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, totals)
}

// Report bundles every rollup for the period in one response.
func (h *StatsHandler) Report(w http.ResponseWriter, r *http.Request) {
	filter, err := parseStatsFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	report, err := h.Service.Report(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}
