package seed

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	catalogDomain "github.com/ridloal/pos-caisse/internal/catalog/domain"
	contactDomain "github.com/ridloal/pos-caisse/internal/contact/domain"
	salesDomain "github.com/ridloal/pos-caisse/internal/sales/domain"
)

//go:embed dataset.yaml
var defaultDataset []byte

// Dataset is the read-only demo data handed to the in-memory stores.
type Dataset struct {
	Categories []catalogDomain.Category
	Products   []catalogDomain.Product
	Customers  []contactDomain.Customer
	Sales      []salesDomain.Sale
}

type rawDataset struct {
	Categories []catalogDomain.Category `yaml:"categories"`
	Products   []rawProduct             `yaml:"products"`
	Customers  []rawCustomer            `yaml:"customers"`
	Sales      []rawSale                `yaml:"sales"`
}

type rawProduct struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Price      string `yaml:"price"`
	Stock      int    `yaml:"stock"`
	CategoryID string `yaml:"category_id"`
	SKU        string `yaml:"sku"`
	Image      string `yaml:"image"`
	Variant    string `yaml:"variant"`
	Type       string `yaml:"type"`
	CreatedAt  string `yaml:"created_at"`
}

type rawCustomer struct {
	ID             string `yaml:"id"`
	Kind           string `yaml:"kind"`
	Name           string `yaml:"name"`
	Phone          string `yaml:"phone"`
	Company        string `yaml:"company"`
	TotalPurchases string `yaml:"total_purchases"`
	CreatedAt      string `yaml:"created_at"`
}

type rawSale struct {
	ID                string `yaml:"id"`
	OrderNumber       string `yaml:"order_number"`
	DaysAgo           int    `yaml:"days_ago"`
	PaymentStatus     string `yaml:"payment_status"`
	TransactionStatus string `yaml:"transaction_status"`
	Method            string `yaml:"method"`
	Advance           string `yaml:"advance"`
	Type              string `yaml:"type"`
	CustomerID        string `yaml:"customer_id"`
	Lines             []struct {
		ProductID string `yaml:"product_id"`
		Quantity  int    `yaml:"quantity"`
	} `yaml:"lines"`
}

// Default decodes the embedded dataset.
func Default(now time.Time) (*Dataset, error) {
	return Parse(defaultDataset, now)
}

// Parse decodes a YAML dataset. Sale dates are resolved against now.
func Parse(data []byte, now time.Time) (*Dataset, error) {
	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("seed: decode dataset: %w", err)
	}

	ds := &Dataset{Categories: raw.Categories}

	categoryNames := make(map[string]string, len(raw.Categories))
	for _, c := range raw.Categories {
		categoryNames[c.ID] = c.Name
	}

	products := make(map[string]catalogDomain.Product, len(raw.Products))
	for _, rp := range raw.Products {
		p, err := rp.toDomain(categoryNames)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
		ds.Products = append(ds.Products, p)
	}

	for _, rc := range raw.Customers {
		c, err := rc.toDomain()
		if err != nil {
			return nil, err
		}
		ds.Customers = append(ds.Customers, c)
	}

	for _, rs := range raw.Sales {
		s, err := rs.toDomain(products, now)
		if err != nil {
			return nil, err
		}
		ds.Sales = append(ds.Sales, s)
	}
	return ds, nil
}

func (rp rawProduct) toDomain(categoryNames map[string]string) (catalogDomain.Product, error) {
	price, err := decimal.NewFromString(rp.Price)
	if err != nil {
		return catalogDomain.Product{}, fmt.Errorf("seed: product %s price: %w", rp.ID, err)
	}
	createdAt, err := parseTime(rp.CreatedAt)
	if err != nil {
		return catalogDomain.Product{}, fmt.Errorf("seed: product %s created_at: %w", rp.ID, err)
	}
	name, ok := categoryNames[rp.CategoryID]
	if !ok {
		return catalogDomain.Product{}, fmt.Errorf("seed: product %s: %w: %s", rp.ID, catalogDomain.ErrCategoryNotFound, rp.CategoryID)
	}
	return catalogDomain.Product{
		ID:         rp.ID,
		Name:       rp.Name,
		Price:      price,
		Stock:      rp.Stock,
		Category:   name,
		CategoryID: rp.CategoryID,
		SKU:        rp.SKU,
		Image:      rp.Image,
		Variant:    rp.Variant,
		Type:       rp.Type,
		CreatedAt:  createdAt,
	}, nil
}

func (rc rawCustomer) toDomain() (contactDomain.Customer, error) {
	total := decimal.Zero
	if rc.TotalPurchases != "" {
		var err error
		if total, err = decimal.NewFromString(rc.TotalPurchases); err != nil {
			return contactDomain.Customer{}, fmt.Errorf("seed: customer %s total_purchases: %w", rc.ID, err)
		}
	}
	createdAt, err := parseTime(rc.CreatedAt)
	if err != nil {
		return contactDomain.Customer{}, fmt.Errorf("seed: customer %s created_at: %w", rc.ID, err)
	}
	kind := contactDomain.Kind(rc.Kind)
	if kind == "" {
		kind = contactDomain.KindClient
	}
	return contactDomain.Customer{
		ID:             rc.ID,
		Kind:           kind,
		Name:           rc.Name,
		Phone:          rc.Phone,
		Company:        rc.Company,
		TotalPurchases: total,
		CreatedAt:      createdAt,
	}, nil
}

// Historical sales carry no tax: Amount is the sum of the line totals.
func (rs rawSale) toDomain(products map[string]catalogDomain.Product, now time.Time) (salesDomain.Sale, error) {
	status := salesDomain.PaymentStatus(rs.PaymentStatus)
	if !status.Valid() {
		return salesDomain.Sale{}, fmt.Errorf("seed: sale %s: unknown payment status %q", rs.ID, rs.PaymentStatus)
	}

	createdAt := now.AddDate(0, 0, -rs.DaysAgo)
	sale := salesDomain.Sale{
		ID:                rs.ID,
		OrderNumber:       rs.OrderNumber,
		Date:              createdAt.Format(salesDomain.DateLayout),
		Time:              createdAt.Format(salesDomain.TimeLayout),
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
		PaymentMethod:     salesDomain.PaymentMethod(rs.Method),
		PaymentStatus:     status,
		TransactionStatus: salesDomain.TransactionStatus(rs.TransactionStatus),
		Type:              rs.Type,
		Tax:               decimal.Zero,
		Discount:          decimal.Zero,
		Change:            decimal.Zero,
	}
	if rs.CustomerID != "" {
		id := rs.CustomerID
		sale.CustomerID = &id
	}

	subtotal := decimal.Zero
	for _, rl := range rs.Lines {
		p, ok := products[rl.ProductID]
		if !ok {
			return salesDomain.Sale{}, fmt.Errorf("seed: sale %s: %w: %s", rs.ID, catalogDomain.ErrProductNotFound, rl.ProductID)
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(rl.Quantity)))
		sale.Lines = append(sale.Lines, salesDomain.SaleLine{
			ProductID: p.ID,
			Name:      p.Name,
			SKU:       p.SKU,
			UnitPrice: p.Price,
			Quantity:  rl.Quantity,
			Total:     lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	sale.Subtotal = subtotal
	sale.Amount = subtotal

	switch status {
	case salesDomain.PaymentPartial:
		advance, err := decimal.NewFromString(rs.Advance)
		if err != nil {
			return salesDomain.Sale{}, fmt.Errorf("seed: sale %s advance: %w", rs.ID, err)
		}
		sale.Advance = advance
		sale.Remaining = subtotal.Sub(advance)
	case salesDomain.PaymentCredit:
		sale.Advance = decimal.Zero
		sale.Remaining = subtotal
	default:
		sale.Advance = subtotal
		sale.Remaining = decimal.Zero
	}
	return sale, nil
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}
