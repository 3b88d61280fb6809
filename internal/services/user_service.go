package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roastery-backend/internal/auth"
	"roastery-backend/internal/cache"
	"roastery-backend/internal/models"
	"roastery-backend/internal/repositories"
)

// ErrTwoFactorRequired signals that password verification succeeded but
// the account needs a TOTP code before a session token is issued.
var ErrTwoFactorRequired = errors.New("two-factor verification required")

type UserService struct {
	Repo *repositories.UserRepository
	JWT  *auth.JWTManager
	TOTP *TOTPService
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager, totp *TOTPService) *UserService {
	return &UserService{Repo: repo, JWT: jwtManager, TOTP: totp}
}

func validRole(role string) bool {
	return role == "admin" || role == "user"
}

// Signup creates a staff account. Only admins reach this through the
// router.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if req.Role == "" {
		req.Role = "user"
	}
	if !validRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	existing, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, req.Username)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		PointID:      req.PointID,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, req.Username)
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. When the account has confirmed TOTP it
// returns ErrTwoFactorRequired together with the user, and the handler
// issues a temp token instead of a session.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}

	// Redis remembers recent successful logins so repeated register
	// sign-ins skip the bcrypt check.
	if cachedID, ok := cache.GetCachedAuth(ctx, req.Username, req.Password); !ok || cachedID != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
		}
		cache.CacheAuth(ctx, req.Username, req.Password, user.ID)
	}

	if user.TOTPEnabled {
		return user, ErrTwoFactorRequired
	}
	return user, nil
}

// CompleteTwoFactor finishes a pending login: the temp token proves the
// password step, the code proves device possession.
func (s *UserService) CompleteTwoFactor(ctx context.Context, tempToken, code string) (*models.User, error) {
	claims, err := s.JWT.ValidateTempToken(tempToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired temp token", ErrValidation)
	}

	user, err := s.Repo.Get(ctx, claims.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, claims.UserID)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}

	ok, err := s.TOTP.Validate(ctx, user.ID, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid code", ErrValidation)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*models.User{}
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, user *models.User) error {
	if !validRole(user.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, user.Role)
	}
	err := s.Repo.Update(ctx, user)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: user %d", ErrNotFound, user.ID)
	}
	return err
}

func (s *UserService) ChangePassword(ctx context.Context, id int, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, id, hash)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return err
}
