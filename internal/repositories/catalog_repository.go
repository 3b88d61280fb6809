package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"roastery-backend/internal/models"
)

type CatalogRepository struct {
	DB *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

// ---- categories ----

func (r *CatalogRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO categories(name, color, sort_order, in_reports)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at`,
		c.Name, c.Color, c.SortOrder, c.InReports,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, c *models.Category) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE categories SET name=$1, color=$2, sort_order=$3, in_reports=$4 WHERE id=$5`,
		c.Name, c.Color, c.SortOrder, c.InReports, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteCategory cascades to subcategories and products.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, color, sort_order, in_reports, created_at
         FROM categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.SortOrder, &c.InReports, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// ---- subcategories ----

func (r *CatalogRepository) CreateSubcategory(ctx context.Context, s *models.Subcategory) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO subcategories(category_id, name, sort_order)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		s.CategoryID, s.Name, s.SortOrder,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *CatalogRepository) UpdateSubcategory(ctx context.Context, s *models.Subcategory) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE subcategories SET category_id=$1, name=$2, sort_order=$3 WHERE id=$4`,
		s.CategoryID, s.Name, s.SortOrder, s.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) DeleteSubcategory(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM subcategories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ---- products ----

func (r *CatalogRepository) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(subcategory_id, name, price, image_url, sort_order)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		p.SubcategoryID, p.Name, p.Price, p.ImageURL, p.SortOrder,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE products SET subcategory_id=$1, name=$2, price=$3, image_url=$4, sort_order=$5 WHERE id=$6`,
		p.SubcategoryID, p.Name, p.Price, p.ImageURL, p.SortOrder, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ---- read views ----

// Tree loads the whole catalog in three queries and assembles the
// category → subcategory → product tree in memory.
func (r *CatalogRepository) Tree(ctx context.Context) (*models.CatalogTree, error) {
	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	subRows, err := r.DB.Query(ctx,
		`SELECT id, category_id, name, sort_order, created_at
         FROM subcategories ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	subsByCategory := make(map[int][]models.SubcategoryNode)
	subIndex := make(map[int]int) // subcategory id -> index within its category slice
	for subRows.Next() {
		var s models.Subcategory
		if err := subRows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.SortOrder, &s.CreatedAt); err != nil {
			return nil, err
		}
		subsByCategory[s.CategoryID] = append(subsByCategory[s.CategoryID], models.SubcategoryNode{Subcategory: s})
		subIndex[s.ID] = len(subsByCategory[s.CategoryID]) - 1
	}
	if err := subRows.Err(); err != nil {
		return nil, err
	}

	prodRows, err := r.DB.Query(ctx,
		`SELECT p.id, p.subcategory_id, p.name, p.price, p.image_url, p.sort_order, p.created_at, s.category_id
         FROM products p
         JOIN subcategories s ON p.subcategory_id = s.id
         ORDER BY p.sort_order, p.id`)
	if err != nil {
		return nil, err
	}
	defer prodRows.Close()

	for prodRows.Next() {
		var p models.Product
		var categoryID int
		if err := prodRows.Scan(&p.ID, &p.SubcategoryID, &p.Name, &p.Price, &p.ImageURL, &p.SortOrder, &p.CreatedAt, &categoryID); err != nil {
			return nil, err
		}
		subs := subsByCategory[categoryID]
		if idx, ok := subIndex[p.SubcategoryID]; ok && idx < len(subs) {
			subs[idx].Products = append(subs[idx].Products, p)
		}
	}
	if err := prodRows.Err(); err != nil {
		return nil, err
	}

	tree := &models.CatalogTree{}
	for _, c := range categories {
		tree.Categories = append(tree.Categories, models.CategoryNode{
			Category:      *c,
			Subcategories: subsByCategory[c.ID],
		})
	}
	return tree, nil
}

// Picker returns the flattened product list for the purchase screen.
func (r *CatalogRepository) Picker(ctx context.Context) ([]*models.PickerProduct, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT p.id, p.name, p.price, p.image_url, s.name, c.name, c.color
         FROM products p
         JOIN subcategories s ON p.subcategory_id = s.id
         JOIN categories c ON s.category_id = c.id
         ORDER BY c.sort_order, s.sort_order, p.sort_order, p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.PickerProduct
	for rows.Next() {
		var p models.PickerProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.ImageURL, &p.Subcategory, &p.Category, &p.Color); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
