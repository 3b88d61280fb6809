package services

import (
	"context"
	"fmt"

	"github.com/pquerna/otp/totp"

	"roastery-backend/internal/models"
	"roastery-backend/internal/repositories"
)

const totpIssuer = "Roastery POS"

type TOTPService struct {
	Repo  *repositories.TOTPRepository
	Users *repositories.UserRepository
}

func NewTOTPService(repo *repositories.TOTPRepository, users *repositories.UserRepository) *TOTPService {
	return &TOTPService{Repo: repo, Users: users}
}

// Setup generates a fresh secret for the user and returns the
// provisioning URL for their authenticator app. The secret stays
// unconfirmed until the first valid code arrives.
func (s *TOTPService) Setup(ctx context.Context, userID int) (*models.TOTPSetupResponse, error) {
	user, err := s.Users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Username,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Upsert(ctx, userID, key.Secret()); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
	}, nil
}

// Confirm activates 2FA after the user proves their app produces valid
// codes.
func (s *TOTPService) Confirm(ctx context.Context, userID int, code string) error {
	secret, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if secret == nil {
		return fmt.Errorf("%w: no pending 2FA setup", ErrNotFound)
	}
	if !totp.Validate(code, secret.Secret) {
		return fmt.Errorf("%w: invalid code", ErrValidation)
	}
	return s.Repo.Confirm(ctx, userID)
}

// Validate checks a login code against the user's confirmed secret.
func (s *TOTPService) Validate(ctx context.Context, userID int, code string) (bool, error) {
	secret, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if secret == nil || !secret.Confirmed {
		return false, fmt.Errorf("%w: 2FA is not enabled", ErrValidation)
	}
	return totp.Validate(code, secret.Secret), nil
}

func (s *TOTPService) Disable(ctx context.Context, userID int) error {
	return s.Repo.Delete(ctx, userID)
}
