package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roastery-backend/internal/models"
)

type TransactionRepository struct {
	DB *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.CustomerID, &t.PointID, &t.Amount, &t.DiscountPercent,
		&t.FinalAmount, &t.Kind, &t.PairedTransactionID, &t.PaymentMethod,
		&t.CashAmount, &t.CardAmount, &t.CreatedAt, &t.CustomerName)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const transactionSelect = `
	SELECT t.id, t.customer_id, t.point_id, t.amount, t.discount_percent, t.final_amount,
	       t.kind, t.paired_transaction_id, t.payment_method, t.cash_amount, t.card_amount,
	       t.created_at,
	       COALESCE(TRIM(c.last_name || ' ' || c.first_name), '') as customer_name
	FROM transactions t
	LEFT JOIN customers c ON t.customer_id = c.id`

// Get returns one transaction with its items.
func (r *TransactionRepository) Get(ctx context.Context, id int) (*models.Transaction, error) {
	t, err := scanTransaction(r.DB.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, transaction_id, product_ref, product_name, unit_price, quantity
         FROM transaction_items WHERE transaction_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.TransactionItem
		err := rows.Scan(&item.ID, &item.TransactionID, &item.ProductRef,
			&item.ProductName, &item.UnitPrice, &item.Quantity)
		if err != nil {
			return nil, err
		}
		t.Items = append(t.Items, item)
	}
	return t, rows.Err()
}

// List returns the sales history, newest first. Filters are combined
// with AND; each is an ordered parameterized predicate, never string
// concatenation of values.
func (r *TransactionRepository) List(ctx context.Context, filter models.TransactionFilter) ([]*models.Transaction, error) {
	var conds []string
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CustomerID != nil {
		conds = append(conds, "t.customer_id = "+arg(*filter.CustomerID))
	}
	if filter.PointID != nil {
		conds = append(conds, "t.point_id = "+arg(*filter.PointID))
	}
	if filter.From != nil {
		conds = append(conds, "t.created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "t.created_at <= "+arg(*filter.To))
	}

	query := transactionSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT " + arg(limit)
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// Delete removes a transaction; its items go with it via cascade.
func (r *TransactionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM transactions WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
