package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roastery-backend/internal/models"
	"roastery-backend/internal/repositories"
)

type TransactionService struct {
	Repo *repositories.TransactionRepository
}

func NewTransactionService(repo *repositories.TransactionRepository) *TransactionService {
	return &TransactionService{Repo: repo}
}

func (s *TransactionService) Get(ctx context.Context, id int) (*models.Transaction, error) {
	t, err := s.Repo.Get(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	return t, err
}

func (s *TransactionService) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	txns, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []*models.Transaction{}
	}
	return txns, nil
}

// Delete removes a transaction without adjusting the owner's spend.
// Corrections go through the replacement flow; this is an admin escape
// hatch for bad test data.
func (s *TransactionService) Delete(ctx context.Context, id int) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	return err
}
