package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	SortOrder int       `json:"sort_order"`
	InReports bool      `json:"in_reports"`
	CreatedAt time.Time `json:"created_at"`
}

type Subcategory struct {
	ID         int       `json:"id"`
	CategoryID int       `json:"category_id"`
	Name       string    `json:"name"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

type Product struct {
	ID            int             `json:"id"`
	SubcategoryID int             `json:"subcategory_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"image_url,omitempty"`
	SortOrder     int             `json:"sort_order"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PickerProduct is the flattened catalog row served to the purchase-time
// product picker.
type PickerProduct struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Subcategory string          `json:"subcategory"`
	Category    string          `json:"category"`
	Color       string          `json:"color"`
}

// CatalogTree is the category → subcategory → product tree served to the
// catalog management screens.
type CatalogTree struct {
	Categories []CategoryNode `json:"categories"`
}

type CategoryNode struct {
	Category
	Subcategories []SubcategoryNode `json:"subcategories"`
}

type SubcategoryNode struct {
	Subcategory
	Products []Product `json:"products"`
}
