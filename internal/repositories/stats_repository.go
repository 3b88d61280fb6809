package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"roastery-backend/internal/models"
)

// StatsRepository holds the read-only reporting queries. It takes its
// own connections from the shared pool and never joins a purchase
// transaction.
type StatsRepository struct {
	DB *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{DB: db}
}

// rangeConds builds the shared transaction-level predicates. All values
// go through placeholders.
func rangeConds(filter models.StatsFilter, args *[]interface{}) []string {
	var conds []string

	arg := func(v interface{}) string {
		*args = append(*args, v)
		return fmt.Sprintf("$%d", len(*args))
	}

	if filter.From != nil {
		conds = append(conds, "t.created_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "t.created_at <= "+arg(*filter.To))
	}
	if filter.PointID != nil {
		conds = append(conds, "t.point_id = "+arg(*filter.PointID))
	}
	return conds
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

// RevenueSummary returns gross (pre-discount) and net revenue for the
// range. An empty range yields zero totals, not an error.
func (r *StatsRepository) RevenueSummary(ctx context.Context, filter models.StatsFilter) (models.RevenueSummary, error) {
	var args []interface{}
	conds := rangeConds(filter, &args)

	var summary models.RevenueSummary
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(t.amount), 0), COALESCE(SUM(t.final_amount), 0), COUNT(*)
         FROM transactions t`+whereClause(conds),
		args...,
	).Scan(&summary.Gross, &summary.Net, &summary.Count)
	return summary, err
}

// PaymentTotals groups net revenue by payment method, with the
// cash/card split carried alongside for mixed payments.
func (r *StatsRepository) PaymentTotals(ctx context.Context, filter models.StatsFilter) ([]models.PaymentMethodTotal, error) {
	var args []interface{}
	conds := rangeConds(filter, &args)

	rows, err := r.DB.Query(ctx,
		`SELECT t.payment_method, COALESCE(SUM(t.final_amount), 0),
		        COALESCE(SUM(t.cash_amount), 0), COALESCE(SUM(t.card_amount), 0), COUNT(*)
         FROM transactions t`+whereClause(conds)+`
         GROUP BY t.payment_method
         ORDER BY t.payment_method`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.PaymentMethodTotal
	for rows.Next() {
		var pt models.PaymentMethodTotal
		if err := rows.Scan(&pt.Method, &pt.Total, &pt.Cash, &pt.Card, &pt.Count); err != nil {
			return nil, err
		}
		totals = append(totals, pt)
	}
	return totals, rows.Err()
}

// ProductTotals groups item revenue by product name snapshot, ranked
// descending by revenue. The optional category filter resolves through
// the product's current catalog placement.
func (r *StatsRepository) ProductTotals(ctx context.Context, filter models.StatsFilter) ([]models.ProductTotal, error) {
	var args []interface{}
	conds := rangeConds(filter, &args)

	join := ""
	if filter.CategoryID != nil {
		join = `
         JOIN products p ON p.id::text = ti.product_ref
         JOIN subcategories s ON p.subcategory_id = s.id`
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("s.category_id = $%d", len(args)))
	}

	rows, err := r.DB.Query(ctx,
		`SELECT ti.product_name,
		        COALESCE(SUM(ti.unit_price * ti.quantity), 0) as revenue,
		        COALESCE(SUM(ti.quantity), 0)
         FROM transaction_items ti
         JOIN transactions t ON ti.transaction_id = t.id`+join+whereClause(conds)+`
         GROUP BY ti.product_name
         ORDER BY revenue DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.ProductTotal
	for rows.Next() {
		var pt models.ProductTotal
		if err := rows.Scan(&pt.ProductName, &pt.Revenue, &pt.Quantity); err != nil {
			return nil, err
		}
		totals = append(totals, pt)
	}
	return totals, rows.Err()
}

// CategoryTotals groups item revenue by the category each product
// currently belongs to. The join happens at query time, so a later
// re-categorization changes historical rollups; that is the intended
// behavior. Categories flagged out of reporting are excluded.
func (r *StatsRepository) CategoryTotals(ctx context.Context, filter models.StatsFilter) ([]models.CategoryTotal, error) {
	var args []interface{}
	conds := rangeConds(filter, &args)
	conds = append(conds, "cat.in_reports")

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conds = append(conds, fmt.Sprintf("cat.id = $%d", len(args)))
	}

	rows, err := r.DB.Query(ctx,
		`SELECT cat.id, cat.name,
		        COALESCE(SUM(ti.unit_price * ti.quantity), 0) as revenue,
		        COALESCE(SUM(ti.quantity), 0)
         FROM transaction_items ti
         JOIN transactions t ON ti.transaction_id = t.id
         JOIN products p ON p.id::text = ti.product_ref
         JOIN subcategories s ON p.subcategory_id = s.id
         JOIN categories cat ON s.category_id = cat.id`+whereClause(conds)+`
         GROUP BY cat.id, cat.name
         ORDER BY revenue DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.CategoryTotal
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.CategoryID, &ct.CategoryName, &ct.Revenue, &ct.Quantity); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}
