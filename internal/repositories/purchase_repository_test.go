package repositories

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"roastery-backend/internal/models"
)

func TestSettlePayment(t *testing.T) {
	final := decimal.NewFromInt(90)

	tests := []struct {
		name     string
		payment  models.PaymentInfo
		method   models.PaymentMethod
		cash     decimal.Decimal
		card     decimal.Decimal
	}{
		{
			name:    "cash by default",
			payment: models.PaymentInfo{},
			method:  models.PaymentCash,
			cash:    final,
			card:    decimal.Zero,
		},
		{
			name:    "card carries the full amount",
			payment: models.PaymentInfo{Method: models.PaymentCard},
			method:  models.PaymentCard,
			cash:    decimal.Zero,
			card:    final,
		},
		{
			name:    "mixed keeps the staff cash portion",
			payment: models.PaymentInfo{Method: models.PaymentMixed, CashAmount: decimal.NewFromInt(30)},
			method:  models.PaymentMixed,
			cash:    decimal.NewFromInt(30),
			card:    decimal.NewFromInt(60),
		},
		{
			name:    "mixed cash clamped to the final amount",
			payment: models.PaymentInfo{Method: models.PaymentMixed, CashAmount: decimal.NewFromInt(500)},
			method:  models.PaymentMixed,
			cash:    final,
			card:    decimal.Zero,
		},
		{
			name:    "mixed negative cash treated as zero",
			payment: models.PaymentInfo{Method: models.PaymentMixed, CashAmount: decimal.NewFromInt(-5)},
			method:  models.PaymentMixed,
			cash:    decimal.Zero,
			card:    final,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, cash, card := settlePayment(final, tt.payment)
			assert.Equal(t, tt.method, method)
			assert.True(t, cash.Equal(tt.cash), "cash: want %s, got %s", tt.cash, cash)
			assert.True(t, card.Equal(tt.card), "card: want %s, got %s", tt.card, card)
			assert.True(t, cash.Add(card).Equal(final), "split must sum to the final amount")
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
	assert.False(t, IsUniqueViolation(nil))
}
