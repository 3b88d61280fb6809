// Package loyalty holds the pricing rules of the loyalty program: tier
// derivation from cumulative spend and the discount applied per tier.
// Everything here is pure; persistence lives in the repositories.
package loyalty

import (
	"github.com/shopspring/decimal"

	"roastery-backend/internal/models"
)

// Policy is passed explicitly to the purchase workflow at construction
// time so tests can vary the constants without global state.
type Policy struct {
	GoldThreshold   decimal.Decimal
	DiscountPercent int
}

// DefaultPolicy is the observed store policy: gold at 500 cumulative
// spend, 10% discount for gold customers.
func DefaultPolicy() Policy {
	return Policy{
		GoldThreshold:   decimal.NewFromInt(500),
		DiscountPercent: 10,
	}
}

// TierFor derives the tier a given cumulative spend maps to.
func (p Policy) TierFor(totalSpent decimal.Decimal) models.Tier {
	if totalSpent.GreaterThanOrEqual(p.GoldThreshold) {
		return models.TierGold
	}
	return models.TierStandard
}

// Promote returns the tier after a spend update. Promotion is
// monotonic: a customer already at gold stays gold even if newTotal
// were below the threshold.
func (p Policy) Promote(current models.Tier, newTotal decimal.Decimal) models.Tier {
	if current == models.TierGold {
		return models.TierGold
	}
	return p.TierFor(newTotal)
}

// DiscountFor returns the discount percentage a tier qualifies for.
func (p Policy) DiscountFor(tier models.Tier) int {
	if tier == models.TierGold {
		return p.DiscountPercent
	}
	return 0
}

// FinalAmount applies a percentage discount to a price, rounded to
// 2 decimal places. The result is computed once at transaction creation
// and never recomputed later.
func FinalAmount(price decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent == 0 {
		return price.Round(2)
	}
	factor := decimal.NewFromInt(100 - int64(discountPercent)).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}

// CartTotal sums unit price × quantity over the cart lines, rounded to
// 2 decimal places.
func CartTotal(items []models.PurchaseItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}
