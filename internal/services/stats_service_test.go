package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roastery-backend/internal/models"
)

type fakeStatsSource struct {
	revenue    models.RevenueSummary
	payments   []models.PaymentMethodTotal
	products   []models.ProductTotal
	categories []models.CategoryTotal
}

func (f *fakeStatsSource) RevenueSummary(ctx context.Context, filter models.StatsFilter) (models.RevenueSummary, error) {
	return f.revenue, nil
}

func (f *fakeStatsSource) PaymentTotals(ctx context.Context, filter models.StatsFilter) ([]models.PaymentMethodTotal, error) {
	return f.payments, nil
}

func (f *fakeStatsSource) ProductTotals(ctx context.Context, filter models.StatsFilter) ([]models.ProductTotal, error) {
	return f.products, nil
}

func (f *fakeStatsSource) CategoryTotals(ctx context.Context, filter models.StatsFilter) ([]models.CategoryTotal, error) {
	return f.categories, nil
}

func TestPaymentsZeroFilled(t *testing.T) {
	// Only card sales in the range; cash and mixed must still appear
	source := &fakeStatsSource{
		payments: []models.PaymentMethodTotal{
			{Method: models.PaymentCard, Total: decimal.NewFromInt(120), Card: decimal.NewFromInt(120), Count: 3},
		},
	}
	svc := NewStatsService(source)

	totals, err := svc.Payments(context.Background(), models.StatsFilter{})
	require.NoError(t, err)
	require.Len(t, totals, 3)

	assert.Equal(t, models.PaymentCash, totals[0].Method)
	assert.True(t, totals[0].Total.IsZero())
	assert.Equal(t, 0, totals[0].Count)

	assert.Equal(t, models.PaymentCard, totals[1].Method)
	assert.True(t, totals[1].Total.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 3, totals[1].Count)

	assert.Equal(t, models.PaymentMixed, totals[2].Method)
	assert.True(t, totals[2].Total.IsZero())
}

func TestPaymentsEmptyRange(t *testing.T) {
	svc := NewStatsService(&fakeStatsSource{})

	totals, err := svc.Payments(context.Background(), models.StatsFilter{})
	require.NoError(t, err)
	require.Len(t, totals, 3)
	for _, pt := range totals {
		assert.True(t, pt.Total.IsZero())
		assert.True(t, pt.Cash.IsZero())
		assert.True(t, pt.Card.IsZero())
		assert.Equal(t, 0, pt.Count)
	}
}

func TestProductsNeverNil(t *testing.T) {
	svc := NewStatsService(&fakeStatsSource{})

	products, err := svc.Products(context.Background(), models.StatsFilter{})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestReportBundlesAllRollups(t *testing.T) {
	source := &fakeStatsSource{
		revenue: models.RevenueSummary{
			Gross: decimal.NewFromInt(100),
			Net:   decimal.NewFromInt(90),
			Count: 2,
		},
		products: []models.ProductTotal{
			{ProductName: "Ethiopia 250g", Revenue: decimal.NewFromInt(50), Quantity: 2},
		},
		categories: []models.CategoryTotal{
			{CategoryID: 1, CategoryName: "Coffee", Revenue: decimal.NewFromInt(50), Quantity: 2},
		},
	}
	svc := NewStatsService(source)

	report, err := svc.Report(context.Background(), models.StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Revenue.Count)
	assert.True(t, report.Revenue.Gross.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Revenue.Net.Equal(decimal.NewFromInt(90)))
	assert.Len(t, report.Payments, 3)
	assert.Len(t, report.Products, 1)
	assert.Len(t, report.Categories, 1)
}
