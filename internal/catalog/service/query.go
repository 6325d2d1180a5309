package service

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ridloal/pos-caisse/internal/catalog/domain"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

type productCompare func(a, b domain.Product) int

var comparators = map[domain.SortKey]productCompare{
	domain.SortCreatedDesc: func(a, b domain.Product) int { return b.CreatedAt.Compare(a.CreatedAt) },
	domain.SortCreatedAsc:  func(a, b domain.Product) int { return a.CreatedAt.Compare(b.CreatedAt) },
	domain.SortNameAsc:     func(a, b domain.Product) int { return compareFold(a.Name, b.Name) },
	domain.SortNameDesc:    func(a, b domain.Product) int { return compareFold(b.Name, a.Name) },
	domain.SortStockDesc:   func(a, b domain.Product) int { return cmp.Compare(b.Stock, a.Stock) },
	domain.SortStockAsc:    func(a, b domain.Product) int { return cmp.Compare(a.Stock, b.Stock) },
	domain.SortPriceDesc:   func(a, b domain.Product) int { return b.Price.Cmp(a.Price) },
	domain.SortPriceAsc:    func(a, b domain.Product) int { return a.Price.Cmp(b.Price) },
}

// ValidSortKey reports whether key names a known ordering.
func ValidSortKey(key domain.SortKey) bool {
	_, ok := comparators[key]
	return ok
}

// Query filters products by search term and category set, then sorts them.
// It never mutates products and always returns a new, non-nil slice.
// An unknown sort key keeps catalog order.
func Query(products []domain.Product, opts domain.QueryOptions) []domain.Product {
	term := strings.ToLower(opts.SearchTerm)

	var categories map[string]struct{}
	if len(opts.CategoryIDs) > 0 {
		categories = make(map[string]struct{}, len(opts.CategoryIDs))
		for _, id := range opts.CategoryIDs {
			categories[id] = struct{}{}
		}
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !matchesSearch(p, term) {
			continue
		}
		if categories != nil {
			if _, ok := categories[p.CategoryID]; !ok {
				continue
			}
		}
		out = append(out, p)
	}

	if opts.SortKey == "" {
		return out
	}
	compare, ok := comparators[opts.SortKey]
	if !ok {
		logger.Warn("catalog query: unknown sort key, keeping catalog order", "sort", string(opts.SortKey))
		return out
	}
	slices.SortStableFunc(out, compare)
	return out
}

func matchesSearch(p domain.Product, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.SKU), term)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
