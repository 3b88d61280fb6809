package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsFilter is the common filter for all statistics queries. The date
// range is inclusive on both ends; nil bounds mean unbounded.
type StatsFilter struct {
	From       *time.Time
	To         *time.Time
	PointID    *int
	CategoryID *int
}

// RevenueSummary reports raw (pre-discount) and net revenue for a period.
type RevenueSummary struct {
	Gross decimal.Decimal `json:"gross"`
	Net   decimal.Decimal `json:"net"`
	Count int             `json:"count"`
}

// PaymentMethodTotal is revenue grouped by how transactions were paid.
// Cash and Card carry the split for mixed payments.
type PaymentMethodTotal struct {
	Method PaymentMethod   `json:"method"`
	Total  decimal.Decimal `json:"total"`
	Cash   decimal.Decimal `json:"cash"`
	Card   decimal.Decimal `json:"card"`
	Count  int             `json:"count"`
}

// ProductTotal is item revenue grouped by product name snapshot, ranked
// descending by revenue.
type ProductTotal struct {
	ProductName string          `json:"product_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	Quantity    int             `json:"quantity"`
}

// CategoryTotal is item revenue grouped by the category the product
// currently belongs to (query-time join).
type CategoryTotal struct {
	CategoryID   int             `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Revenue      decimal.Decimal `json:"revenue"`
	Quantity     int             `json:"quantity"`
}

// StatsReport bundles all rollups for one period.
type StatsReport struct {
	From       *time.Time           `json:"from,omitempty"`
	To         *time.Time           `json:"to,omitempty"`
	Revenue    RevenueSummary       `json:"revenue"`
	Payments   []PaymentMethodTotal `json:"payments"`
	Products   []ProductTotal       `json:"products"`
	Categories []CategoryTotal      `json:"categories"`
}
