package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"roastery-backend/internal/cache"
	"roastery-backend/internal/models"
	"roastery-backend/internal/repositories"
)

// CatalogService fronts catalog reads with the Redis cache and drops
// the cached payloads on every mutation.
type CatalogService struct {
	Repo *repositories.CatalogRepository
}

func NewCatalogService(repo *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{Repo: repo}
}

func mapCatalogErr(err error, what string, id int) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return err
}

// ---- categories ----

func (s *CatalogService) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if err := s.Repo.CreateCategory(ctx, c); err != nil {
		return err
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, c *models.Category) error {
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if err := s.Repo.UpdateCategory(ctx, c); err != nil {
		return mapCatalogErr(err, "category", c.ID)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int) error {
	if err := s.Repo.DeleteCategory(ctx, id); err != nil {
		return mapCatalogErr(err, "category", id)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

// ---- subcategories ----

func (s *CatalogService) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	if sub.Name == "" || sub.CategoryID <= 0 {
		return fmt.Errorf("%w: subcategory name and category_id are required", ErrValidation)
	}
	if err := s.Repo.CreateSubcategory(ctx, sub); err != nil {
		return err
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) UpdateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	if sub.Name == "" || sub.CategoryID <= 0 {
		return fmt.Errorf("%w: subcategory name and category_id are required", ErrValidation)
	}
	if err := s.Repo.UpdateSubcategory(ctx, sub); err != nil {
		return mapCatalogErr(err, "subcategory", sub.ID)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id int) error {
	if err := s.Repo.DeleteSubcategory(ctx, id); err != nil {
		return mapCatalogErr(err, "subcategory", id)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

// ---- products ----

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" || p.SubcategoryID <= 0 {
		return fmt.Errorf("%w: product name and subcategory_id are required", ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product price must be non-negative", ErrValidation)
	}
	if err := s.Repo.CreateProduct(ctx, p); err != nil {
		return err
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" || p.SubcategoryID <= 0 {
		return fmt.Errorf("%w: product name and subcategory_id are required", ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product price must be non-negative", ErrValidation)
	}
	if err := s.Repo.UpdateProduct(ctx, p); err != nil {
		return mapCatalogErr(err, "product", p.ID)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return mapCatalogErr(err, "product", id)
	}
	cache.InvalidateCatalog(ctx)
	return nil
}

// ---- read views ----

// ListCategories returns the flat category list, used by the stats
// screen's category filter.
func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.Repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}

// Tree returns the marshaled catalog tree, served from cache when warm.
func (s *CatalogService) Tree(ctx context.Context) ([]byte, error) {
	if data, ok := cache.GetCachedCatalog(ctx, cache.CatalogTreeKey); ok {
		return data, nil
	}

	tree, err := s.Repo.Tree(ctx)
	if err != nil {
		return nil, err
	}
	if tree.Categories == nil {
		tree.Categories = []models.CategoryNode{}
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}
	cache.CacheCatalog(ctx, cache.CatalogTreeKey, data)
	return data, nil
}

// Picker returns the marshaled flat product list for the register.
func (s *CatalogService) Picker(ctx context.Context) ([]byte, error) {
	if data, ok := cache.GetCachedCatalog(ctx, cache.PickerKey); ok {
		return data, nil
	}

	products, err := s.Repo.Picker(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*models.PickerProduct{}
	}

	data, err := json.Marshal(products)
	if err != nil {
		return nil, err
	}
	cache.CacheCatalog(ctx, cache.PickerKey, data)
	return data, nil
}
