package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"roastery-backend/internal/auth"
	"roastery-backend/internal/middleware"
	"roastery-backend/internal/models"
	"roastery-backend/internal/repositories"
	"roastery-backend/internal/services"
	"roastery-backend/pkg/utils"
)

type AuthHandler struct {
	Service      *services.UserService
	JWT          *auth.JWTManager
	LoginLogRepo *repositories.LoginLogRepository
}

func NewAuthHandler(s *services.UserService, jwtManager *auth.JWTManager, loginLogRepo *repositories.LoginLogRepository) *AuthHandler {
	return &AuthHandler{
		Service:      s,
		JWT:          jwtManager,
		LoginLogRepo: loginLogRepo,
	}
}

// Signup creates a staff account (admin only, enforced by the router).
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, user)
}

// Login authenticates a staff member. Accounts with 2FA enabled get a
// short-lived temp token to finish at /auth/totp/verify.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Service.Login(r.Context(), &req)
	if errors.Is(err, services.ErrTwoFactorRequired) {
		tempToken, terr := h.JWT.GenerateTempToken(user)
		if terr != nil {
			respondError(w, terr)
			return
		}
		utils.JSON(w, http.StatusOK, models.TwoFactorPendingResponse{
			TempToken:   tempToken,
			TOTPPending: true,
		})
		return
	}
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.issueSession(w, r, user)
}

// VerifyTwoFactor exchanges a temp token plus a TOTP code for a session.
func (h *AuthHandler) VerifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	var req models.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Service.CompleteTwoFactor(r.Context(), req.TempToken, req.Code)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid code")
		return
	}

	h.issueSession(w, r, user)
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := h.JWT.GenerateToken(user)
	if err != nil {
		respondError(w, err)
		return
	}

	// Log the successful login; a logging failure never blocks the session
	if err := h.LoginLogRepo.Create(r.Context(), user.ID, getIPAddress(r), r.UserAgent()); err != nil {
		log.Printf("[Auth] failed to record login for user %d: %v", user.ID, err)
	}

	utils.JSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

// Me returns the authenticated staff member.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.Service.Get(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// getIPAddress extracts the real IP address from the request
func getIPAddress(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// X-Forwarded-For can contain multiple IPs, take the first one
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
