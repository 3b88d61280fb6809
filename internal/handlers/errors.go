package handlers

import (
	"errors"
	"log"
	"net/http"

	"roastery-backend/internal/services"
	"roastery-backend/pkg/utils"
)

// respondError maps the service error taxonomy to response codes.
// Anything outside the taxonomy is a storage failure: logged in full,
// returned as an opaque 500.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.Error(w, http.StatusConflict, err.Error())
	default:
		log.Printf("[Handler] internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
