package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"roastery-backend/internal/models"
	"roastery-backend/internal/services"
	"roastery-backend/internal/timeutil"
	"roastery-backend/pkg/utils"
)

type TransactionHandler struct {
	Service *services.TransactionService
}

func NewTransactionHandler(s *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{Service: s}
}

func parseIntParam(r *http.Request, name string) *int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// parseTransactionFilter reads the shared browse filters. The date
// range is inclusive: "to" covers the whole day.
func parseTransactionFilter(r *http.Request) (models.TransactionFilter, error) {
	var filter models.TransactionFilter

	filter.CustomerID = parseIntParam(r, "customer_id")
	filter.PointID = parseIntParam(r, "point_id")
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

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

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	txn, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTransactionFilter(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid date filter, expected YYYY-MM-DD")
		return
	}

	txns, err := h.Service.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txns)
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
