package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ridloal/pos-caisse/internal/catalog/domain"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

const productColumns = `p.id, p.name, p.price, p.stock, c.name, p.category_id,
       COALESCE(p.sku, ''), COALESCE(p.image, ''), COALESCE(p.variant, ''), COALESCE(p.type, ''), p.created_at`

type postgresCatalogRepository struct {
	db *sql.DB
}

func NewPostgresCatalogRepository(db *sql.DB) CatalogRepository {
	return &postgresCatalogRepository{db: db}
}

func (r *postgresCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + `
              FROM products p JOIN categories c ON c.id = p.category_id
              ORDER BY p.created_at ASC, p.id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ListProducts: query failed", err)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *postgresCatalogRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + `
              FROM products p JOIN categories c ON c.id = p.category_id
              WHERE p.id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		logger.Error("GetProductByID: query failed", err, "product_id", id)
		return nil, err
	}
	return &p, nil
}

func (r *postgresCatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, color FROM categories ORDER BY name ASC`)
	if err != nil {
		logger.Error("ListCategories: query failed", err)
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			logger.Error("ListCategories: scan failed", err)
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresCatalogRepository) ListProductsByCategory(ctx context.Context, categoryIDs []string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + `
              FROM products p JOIN categories c ON c.id = p.category_id
              WHERE p.category_id = ANY($1)
              ORDER BY p.created_at ASC, p.id ASC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(categoryIDs))
	if err != nil {
		logger.Error("ListProductsByCategory: query failed", err, "category_ids", categoryIDs)
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Category, &p.CategoryID,
		&p.SKU, &p.Image, &p.Variant, &p.Type, &p.CreatedAt)
	return p, err
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logger.Error("scanProducts: scan failed", err)
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		logger.Error("scanProducts: rows iteration error", err)
		return nil, err
	}
	return products, nil
}
