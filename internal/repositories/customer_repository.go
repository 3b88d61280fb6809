package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roastery-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, COALESCE(external_id, '') as external_id, first_name, last_name, middle_name,
         total_spent, tier, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.ExternalID, &c.FirstName, &c.LastName, &c.MiddleName,
		&c.TotalSpent, &c.Tier, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	return scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1`, id))
}

// GetByExternalID returns (nil, nil) when no customer carries the given
// external id, so callers can fall back to customer creation.
func (r *CustomerRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	c, err := scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE external_id=$1`, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// NormalizeName lowercases a name part and collapses internal whitespace,
// so "  Ann " and "ann" compare equal.
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// FindByFullName matches a customer by exact (first, last, middle) name,
// case- and whitespace-insensitive. Returns (nil, nil) on no match.
func (r *CustomerRepository) FindByFullName(ctx context.Context, firstName, lastName, middleName string) (*models.Customer, error) {
	c, err := scanCustomer(r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers
         WHERE LOWER(REGEXP_REPLACE(TRIM(first_name), '\s+', ' ', 'g')) = $1
           AND LOWER(REGEXP_REPLACE(TRIM(last_name), '\s+', ' ', 'g')) = $2
           AND LOWER(REGEXP_REPLACE(TRIM(middle_name), '\s+', ' ', 'g')) = $3`,
		NormalizeName(firstName), NormalizeName(lastName), NormalizeName(middleName)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// Search does case-insensitive substring matching across name parts,
// external id, and the first+last concatenation in both orders, so the
// query tolerates either name order.
func (r *CustomerRepository) Search(ctx context.Context, query string, limit int) ([]*models.CustomerSearchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + strings.TrimSpace(query) + "%"

	rows, err := r.DB.Query(ctx,
		`SELECT c.id, COALESCE(c.external_id, '') as external_id, c.first_name, c.last_name, c.middle_name,
		        c.total_spent, c.tier, c.created_at, c.updated_at,
		        COUNT(t.id) as transaction_count
         FROM customers c
         LEFT JOIN transactions t ON t.customer_id = c.id
         WHERE c.first_name ILIKE $1
            OR c.last_name ILIKE $1
            OR c.middle_name ILIKE $1
            OR c.external_id ILIKE $1
            OR (c.first_name || ' ' || c.last_name) ILIKE $1
            OR (c.last_name || ' ' || c.first_name) ILIKE $1
         GROUP BY c.id
         ORDER BY c.last_name, c.first_name
         LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.CustomerSearchResult
	for rows.Next() {
		var res models.CustomerSearchResult
		err := rows.Scan(&res.ID, &res.ExternalID, &res.FirstName, &res.LastName, &res.MiddleName,
			&res.TotalSpent, &res.Tier, &res.CreatedAt, &res.UpdatedAt, &res.TransactionCount)
		if err != nil {
			return nil, err
		}
		results = append(results, &res)
	}
	return results, rows.Err()
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*models.Customer, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx,
		`SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Delete removes a customer; dependent transactions and items go with it
// via ON DELETE CASCADE.
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
