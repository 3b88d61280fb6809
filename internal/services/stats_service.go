package services

import (
	"context"

	"github.com/shopspring/decimal"

	"roastery-backend/internal/models"
)

// StatsSource is the read side of the reporting queries, implemented
// by repositories.StatsRepository.
type StatsSource interface {
	RevenueSummary(ctx context.Context, filter models.StatsFilter) (models.RevenueSummary, error)
	PaymentTotals(ctx context.Context, filter models.StatsFilter) ([]models.PaymentMethodTotal, error)
	ProductTotals(ctx context.Context, filter models.StatsFilter) ([]models.ProductTotal, error)
	CategoryTotals(ctx context.Context, filter models.StatsFilter) ([]models.CategoryTotal, error)
}

type StatsService struct {
	Source StatsSource
}

func NewStatsService(source StatsSource) *StatsService {
	return &StatsService{Source: source}
}

// paymentOrder fixes the response layout: every method always appears,
// zero-filled when the range has no such transactions.
var paymentOrder = []models.PaymentMethod{
	models.PaymentCash,
	models.PaymentCard,
	models.PaymentMixed,
}

func fillPayments(totals []models.PaymentMethodTotal) []models.PaymentMethodTotal {
	byMethod := make(map[models.PaymentMethod]models.PaymentMethodTotal, len(totals))
	for _, t := range totals {
		byMethod[t.Method] = t
	}

	filled := make([]models.PaymentMethodTotal, 0, len(paymentOrder))
	for _, m := range paymentOrder {
		t, ok := byMethod[m]
		if !ok {
			t = models.PaymentMethodTotal{
				Method: m,
				Total:  decimal.Zero,
				Cash:   decimal.Zero,
				Card:   decimal.Zero,
			}
		}
		filled = append(filled, t)
	}
	return filled
}

func (s *StatsService) Revenue(ctx context.Context, filter models.StatsFilter) (models.RevenueSummary, error) {
	return s.Source.RevenueSummary(ctx, filter)
}

func (s *StatsService) Payments(ctx context.Context, filter models.StatsFilter) ([]models.PaymentMethodTotal, error) {
	totals, err := s.Source.PaymentTotals(ctx, filter)
	if err != nil {
		return nil, err
	}
	return fillPayments(totals), nil
}

func (s *StatsService) Products(ctx context.Context, filter models.StatsFilter) ([]models.ProductTotal, error) {
	totals, err := s.Source.ProductTotals(ctx, filter)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []models.ProductTotal{}
	}
	return totals, nil
}

func (s *StatsService) Categories(ctx context.Context, filter models.StatsFilter) ([]models.CategoryTotal, error) {
	totals, err := s.Source.CategoryTotals(ctx, filter)
	if err != nil {
		return nil, err
	}
	if totals == nil {
		totals = []models.CategoryTotal{}
	}
	return totals, nil
}

// Report runs every rollup for the period and bundles the result.
func (s *StatsService) Report(ctx context.Context, filter models.StatsFilter) (*models.StatsReport, error) {
	revenue, err := s.Revenue(ctx, filter)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments(ctx, filter)
	if err != nil {
		return nil, err
	}
	products, err := s.Products(ctx, filter)
	if err != nil {
		return nil, err
	}
	categories, err := s.Categories(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &models.StatsReport{
		From:       filter.From,
		To:         filter.To,
		Revenue:    revenue,
		Payments:   payments,
		Products:   products,
		Categories: categories,
	}, nil
}
