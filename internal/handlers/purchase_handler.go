package handlers

import (
	"encoding/json"
	"net/http"

	"roastery-backend/internal/middleware"
	"roastery-backend/internal/models"
	"roastery-backend/internal/services"
	"roastery-backend/pkg/utils"
)

type PurchaseHandler struct {
	Service *services.PurchaseService
}

func NewPurchaseHandler(s *services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{Service: s}
}

// defaultPoint falls back to the staff member's own sale point when the
// request does not name one.
func defaultPoint(r *http.Request, pointID *int) *int {
	if pointID != nil {
		return pointID
	}
	if id, ok := middleware.GetPointIDFromContext(r.Context()); ok {
		return &id
	}
	return nil
}

// CreateCustomer registers a new customer, optionally with their first
// purchase. The first purchase is never discounted.
func (h *PurchaseHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.NewCustomerPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.PointID = defaultPoint(r, req.PointID)

	resp, err := h.Service.CreateCustomer(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// RecordForCustomer records a sale for an existing customer.
func (h *PurchaseHandler) RecordForCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CustomerPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.PointID = defaultPoint(r, req.PointID)

	resp, err := h.Service.RecordForCustomer(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// RecordAnonymous records a walk-in sale with no customer attached.
func (h *PurchaseHandler) RecordAnonymous(w http.ResponseWriter, r *http.Request) {
	var req models.AnonymousPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.PointID = defaultPoint(r, req.PointID)

	resp, err := h.Service.RecordAnonymous(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

// Replace swaps a sold item: the original transaction becomes a return
// and a linked replacement sale is recorded.
func (h *PurchaseHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req models.ReplacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.PointID = defaultPoint(r, req.PointID)

	resp, err := h.Service.Replace(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}
