package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roastery-backend/internal/models"
)

type fakeStore struct {
	customer *models.Customer
	txn      *models.Transaction
	original *models.Transaction
	err      error

	lastPrice decimal.Decimal
	lastItems []models.PurchaseItemRequest
	calls     int
}

func (f *fakeStore) RecordSale(ctx context.Context, customerID int, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, error) {
	f.calls++
	f.lastPrice = price
	f.lastItems = items
	return f.customer, f.txn, f.err
}

func (f *fakeStore) RecordAnonymousSale(ctx context.Context, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Transaction, error) {
	f.calls++
	f.lastPrice = price
	f.lastItems = items
	return f.txn, f.err
}

func (f *fakeStore) CreateCustomerWithFirstSale(ctx context.Context, c *models.Customer, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, error) {
	f.calls++
	f.lastPrice = price
	f.lastItems = items
	if f.err != nil {
		return nil, nil, f.err
	}
	c.ID = 1
	return c, f.txn, nil
}

func (f *fakeStore) RecordReplacement(ctx context.Context, originalID int, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, *models.Transaction, error) {
	f.calls++
	f.lastPrice = price
	return f.customer, f.txn, f.original, f.err
}

type fakeLookup struct {
	byExternal *models.Customer
	byName     *models.Customer
}

func (f *fakeLookup) GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	return f.byExternal, nil
}

func (f *fakeLookup) FindByFullName(ctx context.Context, firstName, lastName, middleName string) (*models.Customer, error) {
	return f.byName, nil
}

func saleTxn() *models.Transaction {
	return &models.Transaction{
		ID:          42,
		Kind:        models.KindSale,
		FinalAmount: decimal.NewFromInt(90),
	}
}

func TestCreateCustomerRequiresName(t *testing.T) {
	svc := NewPurchaseService(&fakeStore{}, &fakeLookup{})

	_, err := svc.CreateCustomer(context.Background(), &models.NewCustomerPurchaseRequest{
		FirstName: "Ann",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestCreateCustomerExternalIDConflict(t *testing.T) {
	lookup := &fakeLookup{byExternal: &models.Customer{ID: 7}}
	store := &fakeStore{}
	svc := NewPurchaseService(store, lookup)

	_, err := svc.CreateCustomer(context.Background(), &models.NewCustomerPurchaseRequest{
		FirstName:  "Ann",
		LastName:   "Lee",
		ExternalID: "CARD-001",
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, store.calls, "nothing should be written on conflict")
}

func TestCreateCustomerNameConflict(t *testing.T) {
	lookup := &fakeLookup{byName: &models.Customer{ID: 7}}
	svc := NewPurchaseService(&fakeStore{}, lookup)

	_, err := svc.CreateCustomer(context.Background(), &models.NewCustomerPurchaseRequest{
		FirstName: "Ann",
		LastName:  "Lee",
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCreateCustomerWithoutPurchase(t *testing.T) {
	store := &fakeStore{}
	svc := NewPurchaseService(store, &fakeLookup{})

	resp, err := svc.CreateCustomer(context.Background(), &models.NewCustomerPurchaseRequest{
		FirstName: "Ann",
		LastName:  "Lee",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Customer)
	assert.Nil(t, resp.Transaction)
	assert.True(t, store.lastPrice.IsZero())
}

func TestCreateCustomerDerivesPriceFromCart(t *testing.T) {
	store := &fakeStore{txn: saleTxn()}
	svc := NewPurchaseService(store, &fakeLookup{})

	resp, err := svc.CreateCustomer(context.Background(), &models.NewCustomerPurchaseRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Items: []models.PurchaseItemRequest{
			{ProductName: "Ethiopia 250g", UnitPrice: decimal.NewFromFloat(12.50), Quantity: 2},
			{ProductName: "Filter V60", UnitPrice: decimal.NewFromInt(5), Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Transaction)
	assert.True(t, store.lastPrice.Equal(decimal.NewFromInt(30)),
		"want cart total 30, got %s", store.lastPrice)
}

func TestCreateCustomerRejectsBadItems(t *testing.T) {
	svc := NewPurchaseService(&fakeStore{}, &fakeLookup{})

	tests := []struct {
		name string
		item models.PurchaseItemRequest
	}{
		{"zero quantity", models.PurchaseItemRequest{ProductName: "Beans", UnitPrice: decimal.NewFromInt(10), Quantity: 0}},
		{"negative unit price", models.PurchaseItemRequest{ProductName: "Beans", UnitPrice: decimal.NewFromInt(-1), Quantity: 1}},
		{"missing name", models.PurchaseItemRequest{UnitPrice: decimal.NewFromInt(10), Quantity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCustomer(context.Background(), &models.NewCustomerPurchaseRequest{
				FirstName: "Ann",
				LastName:  "Lee",
				Items:     []models.PurchaseItemRequest{tt.item},
			})
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRecordForCustomerValidation(t *testing.T) {
	svc := NewPurchaseService(&fakeStore{}, &fakeLookup{})

	_, err := svc.RecordForCustomer(context.Background(), &models.CustomerPurchaseRequest{})
	require.ErrorIs(t, err, ErrValidation)

	// Zero price with an empty cart is not a purchase
	_, err = svc.RecordForCustomer(context.Background(), &models.CustomerPurchaseRequest{CustomerID: 5})
	require.ErrorIs(t, err, ErrValidation)

	// Negative price is always rejected
	_, err = svc.RecordForCustomer(context.Background(), &models.CustomerPurchaseRequest{
		CustomerID: 5,
		Price:      decimal.NewFromInt(-10),
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRecordForCustomerUnknownCustomer(t *testing.T) {
	store := &fakeStore{err: pgx.ErrNoRows}
	svc := NewPurchaseService(store, &fakeLookup{})

	_, err := svc.RecordForCustomer(context.Background(), &models.CustomerPurchaseRequest{
		CustomerID: 999,
		Price:      decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordForCustomerRejectsUnknownPayment(t *testing.T) {
	svc := NewPurchaseService(&fakeStore{}, &fakeLookup{})

	_, err := svc.RecordForCustomer(context.Background(), &models.CustomerPurchaseRequest{
		CustomerID: 5,
		Price:      decimal.NewFromInt(100),
		Payment:    models.PaymentInfo{Method: "cheque"},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRecordAnonymous(t *testing.T) {
	store := &fakeStore{txn: saleTxn()}
	svc := NewPurchaseService(store, &fakeLookup{})

	resp, err := svc.RecordAnonymous(context.Background(), &models.AnonymousPurchaseRequest{
		Price:   decimal.NewFromInt(15),
		Payment: models.PaymentInfo{Method: models.PaymentCash},
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Customer)
	require.NotNil(t, resp.Transaction)
	assert.Equal(t, 1, store.calls)
}

func TestReplaceUnknownTransaction(t *testing.T) {
	store := &fakeStore{err: pgx.ErrNoRows}
	svc := NewPurchaseService(store, &fakeLookup{})

	_, err := svc.Replace(context.Background(), &models.ReplacementRequest{
		TransactionID: 404,
		Price:         decimal.NewFromInt(20),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceSuccess(t *testing.T) {
	original := &models.Transaction{ID: 10, Kind: models.KindReturn}
	replacement := &models.Transaction{ID: 11, Kind: models.KindReplacement, FinalAmount: decimal.NewFromInt(20)}
	store := &fakeStore{
		customer: &models.Customer{ID: 3},
		txn:      replacement,
		original: original,
	}
	svc := NewPurchaseService(store, &fakeLookup{})

	resp, err := svc.Replace(context.Background(), &models.ReplacementRequest{
		TransactionID: 10,
		Price:         decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Equal(t, 11, resp.NewTransaction.ID)
	assert.Equal(t, 10, resp.UpdatedOriginal.ID)
	assert.Equal(t, 3, resp.Customer.ID)
}

func TestSaleListenerFires(t *testing.T) {
	store := &fakeStore{txn: saleTxn()}
	svc := NewPurchaseService(store, &fakeLookup{})

	var seen *models.Transaction
	svc.SetSaleListener(func(t *models.Transaction) { seen = t })

	_, err := svc.RecordAnonymous(context.Background(), &models.AnonymousPurchaseRequest{
		Price: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, 42, seen.ID)
}
