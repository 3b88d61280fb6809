package models

import "time"

// TOTPSecret holds a user's 2FA secret. The secret stays unconfirmed
// until the user verifies a first code, so an interrupted setup never
// locks an account out.
type TOTPSecret struct {
	UserID    int       `json:"user_id"`
	Secret    string    `json:"-"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

type TOTPSetupResponse struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

type TOTPVerifyRequest struct {
	TempToken string `json:"temp_token,omitempty"`
	Code      string `json:"code"`
}
