package loyalty

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"roastery-backend/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestTierFor(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name  string
		spent string
		want  models.Tier
	}{
		{"zero spend", "0", models.TierStandard},
		{"just below threshold", "499.99", models.TierStandard},
		{"exactly at threshold", "500", models.TierGold},
		{"above threshold", "1050.50", models.TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.TierFor(d(tt.spent)))
		})
	}
}

func TestPromote_NeverDemotes(t *testing.T) {
	p := DefaultPolicy()

	// Gold stays gold regardless of the total handed in.
	assert.Equal(t, models.TierGold, p.Promote(models.TierGold, d("10")))
	assert.Equal(t, models.TierGold, p.Promote(models.TierGold, d("1000")))

	// Standard promotes only at the threshold.
	assert.Equal(t, models.TierStandard, p.Promote(models.TierStandard, d("499.99")))
	assert.Equal(t, models.TierGold, p.Promote(models.TierStandard, d("500")))
}

func TestDiscountFor(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 0, p.DiscountFor(models.TierStandard))
	assert.Equal(t, 10, p.DiscountFor(models.TierGold))

	custom := Policy{GoldThreshold: d("100"), DiscountPercent: 25}
	assert.Equal(t, 25, custom.DiscountFor(models.TierGold))
}

func TestFinalAmount(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount int
		want     string
	}{
		{"no discount", "600", 0, "600"},
		{"ten percent", "100", 10, "90"},
		{"ten percent on 50", "50", 10, "45"},
		{"rounds to 2 places", "99.99", 10, "89.99"},
		{"rounding edge", "0.05", 10, "0.05"}, // 0.045 rounds half away from zero
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalAmount(d(tt.price), tt.discount)
			assert.True(t, d(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCartTotal(t *testing.T) {
	items := []models.PurchaseItemRequest{
		{ProductName: "Espresso blend 250g", UnitPrice: d("12.50"), Quantity: 2},
		{ProductName: "Filter V60", UnitPrice: d("4.30"), Quantity: 3},
	}
	assert.True(t, d("37.90").Equal(CartTotal(items)))
	assert.True(t, decimal.Zero.Equal(CartTotal(nil)))
}

// Scenario from the store policy: a purchase that crosses the threshold
// is discounted at the post-purchase tier.
func TestThresholdCrossingScenario(t *testing.T) {
	p := DefaultPolicy()

	spent := d("450")
	price := d("100")
	newTotal := spent.Add(price)

	tier := p.Promote(models.TierStandard, newTotal)
	assert.Equal(t, models.TierGold, tier)

	discount := p.DiscountFor(tier)
	assert.Equal(t, 10, discount)
	assert.True(t, d("90").Equal(FinalAmount(price, discount)))
}
