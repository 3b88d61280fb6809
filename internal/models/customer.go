package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tier is the loyalty level of a customer, derived from cumulative spend.
type Tier string

const (
	TierStandard Tier = "standard"
	TierGold     Tier = "gold"
)

type Customer struct {
	ID         int             `json:"id"`
	ExternalID string          `json:"external_id,omitempty"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	MiddleName string          `json:"middle_name,omitempty"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Tier       Tier            `json:"tier"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CustomerSearchResult is a customer row plus its transaction count,
// returned by the free-text search endpoint.
type CustomerSearchResult struct {
	Customer
	TransactionCount int `json:"transaction_count"`
}
