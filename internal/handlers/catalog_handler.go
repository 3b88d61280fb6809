package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"roastery-backend/internal/models"
	"roastery-backend/internal/services"
	"roastery-backend/pkg/utils"
)

type CatalogHandler struct {
	Service *services.CatalogService
}

func NewCatalogHandler(s *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// ---- categories ----

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.CreateCategory(r.Context(), &c); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var c models.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.ID = id

	if err := h.Service.UpdateCategory(r.Context(), &c); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- subcategories ----

func (h *CatalogHandler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	var s models.Subcategory
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.CreateSubcategory(r.Context(), &s); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, s)
}

func (h *CatalogHandler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var s models.Subcategory
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.ID = id

	if err := h.Service.UpdateSubcategory(r.Context(), &s); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, s)
}

func (h *CatalogHandler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteSubcategory(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- products ----

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.Service.CreateProduct(r.Context(), &p); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	p.ID = id

	if err := h.Service.UpdateProduct(r.Context(), &p); err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- read views ----

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, categories)
}

// Tree serves the category tree for the admin screen. The service
// returns the payload pre-marshaled so cache hits skip encoding.
func (h *CatalogHandler) Tree(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Tree(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// Picker serves the flat product list for the register.
func (h *CatalogHandler) Picker(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Picker(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
