package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"roastery-backend/internal/loyalty"
	"roastery-backend/internal/models"
)

// PurchaseRepository owns the atomic purchase unit: every public method
// runs its reads and writes inside one database transaction, so a
// failure at any step leaves no partial customer/transaction state.
type PurchaseRepository struct {
	DB     *pgxpool.Pool
	Policy loyalty.Policy
}

func NewPurchaseRepository(db *pgxpool.Pool, policy loyalty.Policy) *PurchaseRepository {
	return &PurchaseRepository{DB: db, Policy: policy}
}

// IsUniqueViolation reports whether err is a unique-constraint failure
// (duplicate external id on the customers table).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// applySpend advances a customer's cumulative spend and tier with a
// single statement. The increment and the tier promotion happen in one
// UPDATE, so concurrent purchases for the same customer serialize on
// the row lock and both apply additively.
func (r *PurchaseRepository) applySpend(ctx context.Context, tx pgx.Tx, customerID int, price decimal.Decimal) (*models.Customer, error) {
	return scanCustomer(tx.QueryRow(ctx,
		`UPDATE customers
         SET total_spent = total_spent + $1,
             tier = CASE WHEN tier = 'gold' OR total_spent + $1 >= $2 THEN 'gold' ELSE tier END,
             updated_at = CURRENT_TIMESTAMP
         WHERE id = $3
         RETURNING `+customerColumns,
		price, r.Policy.GoldThreshold, customerID))
}

// settlePayment normalizes the recorded payment against the final
// amount: cash and card purchases carry the full amount on one side,
// a mixed purchase keeps the staff-entered cash portion and puts the
// remainder on card.
func settlePayment(final decimal.Decimal, p models.PaymentInfo) (models.PaymentMethod, decimal.Decimal, decimal.Decimal) {
	switch p.Method {
	case models.PaymentCard:
		return models.PaymentCard, decimal.Zero, final
	case models.PaymentMixed:
		cash := p.CashAmount
		if cash.IsNegative() {
			cash = decimal.Zero
		}
		if cash.GreaterThan(final) {
			cash = final
		}
		return models.PaymentMixed, cash, final.Sub(cash)
	default:
		return models.PaymentCash, final, decimal.Zero
	}
}

func (r *PurchaseRepository) insertTransaction(ctx context.Context, tx pgx.Tx, t *models.Transaction, items []models.PurchaseItemRequest) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO transactions(customer_id, point_id, amount, discount_percent, final_amount,
                                  kind, paired_transaction_id, payment_method, cash_amount, card_amount)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id, created_at`,
		t.CustomerID, t.PointID, t.Amount, t.DiscountPercent, t.FinalAmount,
		t.Kind, t.PairedTransactionID, t.PaymentMethod, t.CashAmount, t.CardAmount,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return err
	}

	for _, item := range items {
		var ti models.TransactionItem
		err = tx.QueryRow(ctx,
			`INSERT INTO transaction_items(transaction_id, product_ref, product_name, unit_price, quantity)
             VALUES($1, $2, $3, $4, $5)
             RETURNING id`,
			t.ID, item.ProductRef, item.ProductName, item.UnitPrice, item.Quantity,
		).Scan(&ti.ID)
		if err != nil {
			return err
		}
		ti.TransactionID = t.ID
		ti.ProductRef = item.ProductRef
		ti.ProductName = item.ProductName
		ti.UnitPrice = item.UnitPrice
		ti.Quantity = item.Quantity
		t.Items = append(t.Items, ti)
	}
	return nil
}

// RecordSale records a purchase for an existing customer: spend and
// tier advance first, then the transaction is priced off the updated
// tier (a purchase that crosses the gold threshold is already
// discounted).
func (r *PurchaseRepository) RecordSale(ctx context.Context, customerID int, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	customer, err := r.applySpend(ctx, tx, customerID, price)
	if err != nil {
		return nil, nil, err
	}

	discount := r.Policy.DiscountFor(customer.Tier)
	final := loyalty.FinalAmount(price, discount)
	method, cash, card := settlePayment(final, payment)

	txn := &models.Transaction{
		CustomerID:      &customerID,
		PointID:         pointID,
		Amount:          price.Round(2),
		DiscountPercent: discount,
		FinalAmount:     final,
		Kind:            models.KindSale,
		PaymentMethod:   method,
		CashAmount:      cash,
		CardAmount:      card,
	}
	if err := r.insertTransaction(ctx, tx, txn, items); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return customer, txn, nil
}

// RecordAnonymousSale records a purchase with no owning customer and
// therefore no discount.
func (r *PurchaseRepository) RecordAnonymousSale(ctx context.Context, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Transaction, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	final := price.Round(2)
	method, cash, card := settlePayment(final, payment)

	txn := &models.Transaction{
		PointID:       pointID,
		Amount:        final,
		FinalAmount:   final,
		Kind:          models.KindSale,
		PaymentMethod: method,
		CashAmount:    cash,
		CardAmount:    card,
	}
	if err := r.insertTransaction(ctx, tx, txn, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateCustomerWithFirstSale inserts the customer with zero spend and
// then records the optional first purchase in the same transaction.
// The discount is always 0 here: the gold threshold is evaluated
// against history strictly before the current purchase, and a new
// customer has none. The stored tier still reflects the post-purchase
// total.
func (r *PurchaseRepository) CreateCustomerWithFirstSale(ctx context.Context, c *models.Customer, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var externalID *string
	if c.ExternalID != "" {
		externalID = &c.ExternalID
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO customers(external_id, first_name, last_name, middle_name)
         VALUES($1, $2, $3, $4)
         RETURNING id, total_spent, tier, created_at, updated_at`,
		externalID, c.FirstName, c.LastName, c.MiddleName,
	).Scan(&c.ID, &c.TotalSpent, &c.Tier, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, nil, err
	}

	if price.IsZero() && len(items) == 0 {
		if err := tx.Commit(ctx); err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	}

	customer, err := r.applySpend(ctx, tx, c.ID, price)
	if err != nil {
		return nil, nil, err
	}

	final := price.Round(2)
	method, cash, card := settlePayment(final, payment)

	txn := &models.Transaction{
		CustomerID:    &c.ID,
		PointID:       pointID,
		Amount:        final,
		FinalAmount:   final,
		Kind:          models.KindSale,
		PaymentMethod: method,
		CashAmount:    cash,
		CardAmount:    card,
	}
	if err := r.insertTransaction(ctx, tx, txn, items); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return customer, txn, nil
}

// RecordReplacement marks the original transaction as a return and
// records a new replacement transaction linked to it. The replacement
// is priced and persisted exactly like a fresh sale against the same
// customer, if any.
func (r *PurchaseRepository) RecordReplacement(ctx context.Context, originalID int, price decimal.Decimal, items []models.PurchaseItemRequest, payment models.PaymentInfo, pointID *int) (*models.Customer, *models.Transaction, *models.Transaction, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	defer tx.Rollback(ctx)

	original := &models.Transaction{}
	err = tx.QueryRow(ctx,
		`SELECT id, customer_id, point_id, amount, discount_percent, final_amount, kind,
                paired_transaction_id, payment_method, cash_amount, card_amount, created_at
         FROM transactions WHERE id = $1 FOR UPDATE`, originalID,
	).Scan(&original.ID, &original.CustomerID, &original.PointID, &original.Amount,
		&original.DiscountPercent, &original.FinalAmount, &original.Kind,
		&original.PairedTransactionID, &original.PaymentMethod,
		&original.CashAmount, &original.CardAmount, &original.CreatedAt)
	if err != nil {
		return nil, nil, nil, err
	}

	var customer *models.Customer
	discount := 0
	if original.CustomerID != nil {
		customer, err = r.applySpend(ctx, tx, *original.CustomerID, price)
		if err != nil {
			return nil, nil, nil, err
		}
		discount = r.Policy.DiscountFor(customer.Tier)
	}

	final := loyalty.FinalAmount(price, discount)
	method, cash, card := settlePayment(final, payment)

	replacement := &models.Transaction{
		CustomerID:          original.CustomerID,
		PointID:             pointID,
		Amount:              price.Round(2),
		DiscountPercent:     discount,
		FinalAmount:         final,
		Kind:                models.KindReplacement,
		PairedTransactionID: &original.ID,
		PaymentMethod:       method,
		CashAmount:          cash,
		CardAmount:          card,
	}
	if err := r.insertTransaction(ctx, tx, replacement, items); err != nil {
		return nil, nil, nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE transactions SET kind = 'return', paired_transaction_id = $1 WHERE id = $2`,
		replacement.ID, original.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	original.Kind = models.KindReturn
	original.PairedTransactionID = &replacement.ID

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, nil, err
	}
	return customer, replacement, original, nil
}
