package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"roastery-backend/internal/services"
	"roastery-backend/pkg/utils"
)

type CustomerHandler struct {
	Service *services.CustomerService
}

func NewCustomerHandler(s *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{Service: s}
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	customer, err := h.Service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

// GetByCard resolves a loyalty card scan by external id.
func (h *CustomerHandler) GetByCard(w http.ResponseWriter, r *http.Request) {
	externalID := r.URL.Query().Get("external_id")

	customer, err := h.Service.GetByExternalID(r.Context(), externalID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

// Search matches customers by name fragments or external id.
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.Service.Search(r.Context(), query, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, results)
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	customers, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

// DeleteCustomer removes a customer and their transaction history.
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
