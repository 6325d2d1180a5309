package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	Category   string          `json:"category"`    // display name
	CategoryID string          `json:"category_id"` // FK to Category
	SKU        string          `json:"sku,omitempty"`
	Image      string          `json:"image,omitempty"`
	Variant    string          `json:"variant,omitempty"`
	Type       string          `json:"type,omitempty"` // product family, e.g. vetement, chaussure
	CreatedAt  time.Time       `json:"created_at"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type SortKey string

const (
	SortCreatedDesc SortKey = "created_desc"
	SortCreatedAsc  SortKey = "created_asc"
	SortNameAsc     SortKey = "name_asc"
	SortNameDesc    SortKey = "name_desc"
	SortStockDesc   SortKey = "stock_desc"
	SortStockAsc    SortKey = "stock_asc"
	SortPriceDesc   SortKey = "price_desc"
	SortPriceAsc    SortKey = "price_asc"
)

// QueryOptions drives the catalog view: search AND category, then sort.
// An empty CategoryIDs means every category.
type QueryOptions struct {
	SearchTerm  string   `form:"search"`
	CategoryIDs []string `form:"category"`
	SortKey     SortKey  `form:"sort"`
}

type Stats struct {
	TotalProducts int             `json:"total_products"`
	StockValue    decimal.Decimal `json:"stock_value"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	LowStock      []Product       `json:"low_stock"`
}
