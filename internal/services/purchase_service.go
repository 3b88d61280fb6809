package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"roastery-backend/internal/loyalty"
	"roastery-backend/internal/metrics"
	"roastery-backend/internal/models"
	"roastery-backend/internal/repositories"
)

// PurchaseStore is the atomic persistence unit behind the purchase
// workflow. Implemented by repositories.PurchaseRepository; tests
// substitute an in-memory fake.
type PurchaseStore interface {
	RecordSale(ctx context.Context, customerID int, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, error)
	RecordAnonymousSale(ctx context.Context, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Transaction, error)
	CreateCustomerWithFirstSale(ctx context.Context, c *models.Customer, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, error)
	RecordReplacement(ctx context.Context, originalID int, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, *models.Transaction, error)
}

// CustomerLookup covers the collision checks run before customer
// creation. A miss returns (nil, nil), not an error.
type CustomerLookup interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error)
	FindByFullName(ctx context.Context, firstName, lastName, middleName string) (*models.Customer, error)
}

type PurchaseService struct {
	Store     PurchaseStore
	Customers CustomerLookup

	saleListener func(*models.Transaction)
}

func NewPurchaseService(store PurchaseStore, customers CustomerLookup) *PurchaseService {
	return &PurchaseService{Store: store, Customers: customers}
}

// SetSaleListener wires an optional callback invoked after every
// recorded transaction (used for the monitoring live feed).
func (s *PurchaseService) SetSaleListener(fn func(*models.Transaction)) {
	s.saleListener = fn
}

func (s *PurchaseService) recorded(t *models.Transaction) {
	metrics.SalesRecordedTotal.WithLabelValues(string(t.Kind)).Inc()
	if f, _ := t.FinalAmount.Float64(); f > 0 {
		metrics.SalesRevenue.Add(f)
	}
	if s.saleListener != nil {
		s.saleListener(t)
	}
}

// resolvePrice returns the purchase price: the explicit price when
// given, otherwise the cart total. Purchases must end up with a
// positive price; allowZero permits the create-customer-without-
// purchase case.
func resolvePrice(price decimal.Decimal, items []models.PurchaseItemRequest, allowZero bool) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return decimal.Zero, fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
		if it.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: item unit price must be non-negative", ErrValidation)
		}
		if it.ProductName == "" {
			return decimal.Zero, fmt.Errorf("%w: item product name is required", ErrValidation)
		}
	}
	if price.IsZero() && len(items) > 0 {
		price = loyalty.CartTotal(items)
	}
	if price.IsZero() && !allowZero {
		return decimal.Zero, fmt.Errorf("%w: price or a non-empty cart is required", ErrValidation)
	}
	return price, nil
}

func validatePayment(p models.PaymentInfo) error {
	switch p.Method {
	case "", models.PaymentCash, models.PaymentCard, models.PaymentMixed:
		return nil
	}
	return fmt.Errorf("%w: unknown payment method %q", ErrValidation, p.Method)
}

// CreateCustomer creates a new loyalty customer, optionally recording
// their first purchase in the same atomic unit. The collision checks
// (exact external id, case/whitespace-insensitive full name) run first
// and fail with a conflict before anything is written.
func (s *PurchaseService) CreateCustomer(ctx context.Context, req *models.NewCustomerPurchaseRequest) (*models.PurchaseResponse, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("%w: first name and last name are required", ErrValidation)
	}
	if err := validatePayment(req.Payment); err != nil {
		return nil, err
	}

	price, err := resolvePrice(req.Price, req.Items, true)
	if err != nil {
		return nil, err
	}

	if req.ExternalID != "" {
		existing, err := s.Customers.GetByExternalID(ctx, req.ExternalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: external id %q already registered", ErrConflict, req.ExternalID)
		}
	}

	existing, err := s.Customers.FindByFullName(ctx, req.FirstName, req.LastName, req.MiddleName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: customer with this name already exists", ErrConflict)
	}

	customer := &models.Customer{
		ExternalID: req.ExternalID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
	}

	customer, txn, err := s.Store.CreateCustomerWithFirstSale(ctx, customer, price, req.Items, req.Payment, req.PointID)
	if err != nil {
		// The unique index backs the pre-check against concurrent creations
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: external id %q already registered", ErrConflict, req.ExternalID)
		}
		return nil, err
	}

	if txn != nil {
		s.recorded(txn)
	}
	return &models.PurchaseResponse{Customer: customer, Transaction: txn}, nil
}

// RecordForCustomer records a purchase for an existing customer.
func (s *PurchaseService) RecordForCustomer(ctx context.Context, req *models.CustomerPurchaseRequest) (*models.PurchaseResponse, error) {
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customer_id is required", ErrValidation)
	}
	if err := validatePayment(req.Payment); err != nil {
		return nil, err
	}

	price, err := resolvePrice(req.Price, req.Items, false)
	if err != nil {
		return nil, err
	}

	customer, txn, err := s.Store.RecordSale(ctx, req.CustomerID, price, req.Items, req.Payment, req.PointID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, req.CustomerID)
		}
		return nil, err
	}

	s.recorded(txn)
	return &models.PurchaseResponse{Customer: customer, Transaction: txn}, nil
}

// RecordAnonymous records a purchase with no owning customer. No
// customer row is created or touched and no discount applies.
func (s *PurchaseService) RecordAnonymous(ctx context.Context, req *models.AnonymousPurchaseRequest) (*models.PurchaseResponse, error) {
	if err := validatePayment(req.Payment); err != nil {
		return nil, err
	}

	price, err := resolvePrice(req.Price, req.Items, false)
	if err != nil {
		return nil, err
	}

	txn, err := s.Store.RecordAnonymousSale(ctx, price, req.Items, req.Payment, req.PointID)
	if err != nil {
		return nil, err
	}

	s.recorded(txn)
	return &models.PurchaseResponse{Transaction: txn}, nil
}

// Replace marks an existing transaction as returned and records its
// replacement, priced like a fresh sale against the same customer.
func (s *PurchaseService) Replace(ctx context.Context, req *models.ReplacementRequest) (*models.ReplacementResponse, error) {
	if req.TransactionID <= 0 {
		return nil, fmt.Errorf("%w: transaction_id is required", ErrValidation)
	}
	if err := validatePayment(req.Payment); err != nil {
		return nil, err
	}

	price, err := resolvePrice(req.Price, req.Items, false)
	if err != nil {
		return nil, err
	}

	customer, replacement, original, err := s.Store.RecordReplacement(ctx, req.TransactionID, price, req.Items, req.Payment, req.PointID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, req.TransactionID)
		}
		return nil, err
	}

	s.recorded(replacement)
	return &models.ReplacementResponse{
		Customer:        customer,
		NewTransaction:  replacement,
		UpdatedOriginal: original,
	}, nil
}
