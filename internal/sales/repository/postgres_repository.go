package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/sales/domain"
)

type postgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) SaleRepository {
	return &postgresSaleRepository{db: db}
}

const saleColumns = `id, order_number, created_at, updated_at, amount, subtotal, tax, discount,
	advance, remaining, change_due, COALESCE(payment_method, ''), payment_status,
	transaction_status, customer_id, COALESCE(type, '')`

// Save inserts the sale and its lines in one transaction.
func (r *postgresSaleRepository) Save(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("Save: failed to begin tx", err)
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO sales (`+
		`id, order_number, created_at, updated_at, amount, subtotal, tax, discount, `+
		`advance, remaining, change_due, payment_method, payment_status, transaction_status, customer_id, type) `+
		`VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		sale.ID, sale.OrderNumber, sale.CreatedAt, sale.UpdatedAt, sale.Amount, sale.Subtotal, sale.Tax, sale.Discount,
		sale.Advance, sale.Remaining, sale.Change, string(sale.PaymentMethod), string(sale.PaymentStatus),
		string(sale.TransactionStatus), sale.CustomerID, sale.Type)
	if err != nil {
		logger.Error("Save: failed to insert sale", err, "sale_id", sale.ID)
		return err
	}

	lineStmt, err := tx.PrepareContext(ctx, `INSERT INTO sale_lines (sale_id, position, product_id, name, sku, unit_price, quantity, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		logger.Error("Save: failed to prepare line statement", err)
		return err
	}
	defer lineStmt.Close()

	for i, l := range sale.Lines {
		if _, err := lineStmt.ExecContext(ctx, sale.ID, i, l.ProductID, l.Name, l.SKU, l.UnitPrice, l.Quantity, l.Total); err != nil {
			logger.Error("Save: failed to insert sale line", err, "sale_id", sale.ID, "product_id", l.ProductID)
			return err
		}
	}
	return tx.Commit()
}

func (r *postgresSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC, id ASC`)
	if err != nil {
		logger.Error("ListSales: query failed", err)
		return nil, err
	}
	defer rows.Close()

	sales := []domain.Sale{}
	index := map[string]int{}
	ids := []string{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			logger.Error("ListSales: scan failed", err)
			return nil, err
		}
		index[s.ID] = len(sales)
		ids = append(ids, s.ID)
		sales = append(sales, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return sales, nil
	}

	lineRows, err := r.db.QueryContext(ctx, `SELECT sale_id, product_id, name, COALESCE(sku, ''), unit_price, quantity, total
		FROM sale_lines WHERE sale_id = ANY($1) ORDER BY sale_id, position`, pq.Array(ids))
	if err != nil {
		logger.Error("ListSales: line query failed", err)
		return nil, err
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var saleID string
		var l domain.SaleLine
		if err := lineRows.Scan(&saleID, &l.ProductID, &l.Name, &l.SKU, &l.UnitPrice, &l.Quantity, &l.Total); err != nil {
			return nil, err
		}
		if i, ok := index[saleID]; ok {
			sales[i].Lines = append(sales[i].Lines, l)
		}
	}
	return sales, lineRows.Err()
}

func (r *postgresSaleRepository) GetSaleByID(ctx context.Context, id string) (*domain.Sale, error) {
	s, err := scanSale(r.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		logger.Error("GetSaleByID: query failed", err, "sale_id", id)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT product_id, name, COALESCE(sku, ''), unit_price, quantity, total
		FROM sale_lines WHERE sale_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var l domain.SaleLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.SKU, &l.UnitPrice, &l.Quantity, &l.Total); err != nil {
			return nil, err
		}
		s.Lines = append(s.Lines, l)
	}
	return s, rows.Err()
}

func (r *postgresSaleRepository) UpdateSale(ctx context.Context, sale *domain.Sale) error {
	query := `UPDATE sales SET advance = $1, remaining = $2, payment_status = $3, transaction_status = $4, updated_at = $5
		WHERE id = $6`
	res, err := r.db.ExecContext(ctx, query, sale.Advance, sale.Remaining, string(sale.PaymentStatus),
		string(sale.TransactionStatus), sale.UpdatedAt, sale.ID)
	if err != nil {
		logger.Error("UpdateSale: exec failed", err, "sale_id", sale.ID, "status", sale.PaymentStatus)
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var s domain.Sale
	var customerID sql.NullString
	if err := row.Scan(&s.ID, &s.OrderNumber, &s.CreatedAt, &s.UpdatedAt, &s.Amount, &s.Subtotal, &s.Tax, &s.Discount,
		&s.Advance, &s.Remaining, &s.Change, &s.PaymentMethod, &s.PaymentStatus, &s.TransactionStatus,
		&customerID, &s.Type); err != nil {
		return nil, err
	}
	if customerID.Valid {
		id := customerID.String
		s.CustomerID = &id
	}
	s.Date = s.CreatedAt.Format(domain.DateLayout)
	s.Time = s.CreatedAt.Format(domain.TimeLayout)
	s.Lines = []domain.SaleLine{}
	return &s, nil
}
