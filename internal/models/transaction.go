package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationKind classifies a transaction. A return points at its
// replacement and vice versa via PairedTransactionID.
type OperationKind string

const (
	KindSale        OperationKind = "sale"
	KindReturn      OperationKind = "return"
	KindReplacement OperationKind = "replacement"
)

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentCard  PaymentMethod = "card"
	PaymentMixed PaymentMethod = "mixed"
)

type Transaction struct {
	ID                  int             `json:"id"`
	CustomerID          *int            `json:"customer_id,omitempty"`
	PointID             *int            `json:"point_id,omitempty"`
	Amount              decimal.Decimal `json:"amount"`
	DiscountPercent     int             `json:"discount_percent"`
	FinalAmount         decimal.Decimal `json:"final_amount"`
	Kind                OperationKind   `json:"kind"`
	PairedTransactionID *int            `json:"paired_transaction_id,omitempty"`
	PaymentMethod       PaymentMethod   `json:"payment_method"`
	CashAmount          decimal.Decimal `json:"cash_amount"`
	CardAmount          decimal.Decimal `json:"card_amount"`
	CreatedAt           time.Time       `json:"created_at"`

	// Joined/loaded fields, not always populated
	CustomerName string            `json:"customer_name,omitempty"`
	Items        []TransactionItem `json:"items,omitempty"`
}

// TransactionItem is a catalog line snapshot taken at purchase time.
// ProductRef is free text and is not required to reference a live
// catalog row; later catalog price changes never alter historical items.
type TransactionItem struct {
	ID            int             `json:"id"`
	TransactionID int             `json:"transaction_id"`
	ProductRef    string          `json:"product_ref"`
	ProductName   string          `json:"product_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
}

// PurchaseItemRequest is one cart line in a purchase request.
type PurchaseItemRequest struct {
	ProductRef  string          `json:"product_ref"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// PaymentInfo carries how a purchase was paid. For mixed payments the
// cash/card split is recorded as entered by staff.
type PaymentInfo struct {
	Method     PaymentMethod   `json:"payment_method"`
	CashAmount decimal.Decimal `json:"cash_amount"`
	CardAmount decimal.Decimal `json:"card_amount"`
}

// NewCustomerPurchaseRequest creates a customer, optionally together
// with their first purchase.
type NewCustomerPurchaseRequest struct {
	FirstName  string                `json:"first_name"`
	LastName   string                `json:"last_name"`
	MiddleName string                `json:"middle_name"`
	ExternalID string                `json:"external_id"`
	Price      decimal.Decimal       `json:"price"`
	Items      []PurchaseItemRequest `json:"items"`
	Payment    PaymentInfo           `json:"payment"`
	PointID    *int                  `json:"point_id"`
}

// CustomerPurchaseRequest records a purchase for an existing customer.
type CustomerPurchaseRequest struct {
	CustomerID int                   `json:"customer_id"`
	Price      decimal.Decimal       `json:"price"`
	Items      []PurchaseItemRequest `json:"items"`
	Payment    PaymentInfo           `json:"payment"`
	PointID    *int                  `json:"point_id"`
}

// AnonymousPurchaseRequest records a purchase with no owning customer.
type AnonymousPurchaseRequest struct {
	Price   decimal.Decimal       `json:"price"`
	Items   []PurchaseItemRequest `json:"items"`
	Payment PaymentInfo           `json:"payment"`
	PointID *int                  `json:"point_id"`
}

// ReplacementRequest marks an existing transaction as returned and
// records a new transaction as its replacement.
type ReplacementRequest struct {
	TransactionID int                   `json:"transaction_id"`
	Price         decimal.Decimal       `json:"price"`
	Items         []PurchaseItemRequest `json:"items"`
	Payment       PaymentInfo           `json:"payment"`
	PointID       *int                  `json:"point_id"`
}

// PurchaseResponse is returned by the sale endpoints. Customer is nil
// for anonymous purchases.
type PurchaseResponse struct {
	Customer    *Customer    `json:"customer,omitempty"`
	Transaction *Transaction `json:"transaction"`
}

// ReplacementResponse is returned by the replacement endpoint.
type ReplacementResponse struct {
	Customer        *Customer    `json:"customer,omitempty"`
	NewTransaction  *Transaction `json:"new_transaction"`
	UpdatedOriginal *Transaction `json:"updated_original"`
}

// TransactionFilter narrows the sales history listing.
type TransactionFilter struct {
	CustomerID *int
	PointID    *int
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
