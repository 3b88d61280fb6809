package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roastery-backend/internal/models"
	"roastery-backend/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) Get(ctx context.Context, id int) (*models.Customer, error) {
	c, err := s.Repo.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: customer %d", ErrNotFound, id)
	}
	return c, err
}

// GetByExternalID resolves a loyalty card scan. A miss is a plain
// not-found so the register can fall back to manual search.
func (s *CustomerService) GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	if externalID == "" {
		return nil, fmt.Errorf("%w: external id is required", ErrValidation)
	}
	c, err := s.Repo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: external id %q", ErrNotFound, externalID)
	}
	return c, nil
}

func (s *CustomerService) Search(ctx context.Context, query string, limit int) ([]*models.CustomerSearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}
	results, err := s.Repo.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.CustomerSearchResult{}
	}
	return results, nil
}

func (s *CustomerService) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	customers, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	return customers, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: customer %d", ErrNotFound, id)
	}
	return err
}
