package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ridloal/pos-caisse/internal/catalog/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 9, 0, 0, 0, time.UTC)
}

func fixtureProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "T-shirt", SKU: "TSH-001", Price: decimal.NewFromInt(6), Stock: 8, CategoryID: "vet", CreatedAt: day(10)},
		{ID: "2", Name: "chemise", SKU: "CHE-014", Price: decimal.NewFromInt(10), Stock: 14, CategoryID: "vet", CreatedAt: day(3)},
		{ID: "3", Name: "Baskets", SKU: "BSK-220", Price: decimal.RequireFromString("45.5"), Stock: 5, CategoryID: "cha", CreatedAt: day(21)},
		{ID: "4", Name: "Sandales", SKU: "SND-031", Price: decimal.NewFromInt(10), Stock: 22, CategoryID: "cha", CreatedAt: day(28)},
		{ID: "5", Name: "Ceinture", SKU: "", Price: decimal.RequireFromString("12.9"), Stock: 5, CategoryID: "acc", CreatedAt: day(2)},
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestQuery_Search(t *testing.T) {
	products := fixtureProducts()

	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(Query(products, domain.QueryOptions{})), "empty term matches everything")
	assert.Equal(t, []string{"2"}, ids(Query(products, domain.QueryOptions{SearchTerm: "CHEMISE"})), "name match is case-insensitive")
	assert.Equal(t, []string{"3"}, ids(Query(products, domain.QueryOptions{SearchTerm: "bsk"})), "sku match is case-insensitive")
	assert.Equal(t, []string{"1", "2", "4"}, ids(Query(products, domain.QueryOptions{SearchTerm: "-0"})), "sku substring")
	assert.Empty(t, ids(Query(products, domain.QueryOptions{SearchTerm: " -0"})), "whitespace is part of the term")

	none := Query(products, domain.QueryOptions{SearchTerm: "parapluie"})
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestQuery_Categories(t *testing.T) {
	products := fixtureProducts()

	assert.Len(t, Query(products, domain.QueryOptions{CategoryIDs: []string{}}), 5, "empty set means all categories")
	assert.Equal(t, []string{"1", "2"}, ids(Query(products, domain.QueryOptions{CategoryIDs: []string{"vet"}})))
	assert.Equal(t, []string{"1", "2", "5"}, ids(Query(products, domain.QueryOptions{CategoryIDs: []string{"acc", "vet"}})))
	assert.Empty(t, Query(products, domain.QueryOptions{CategoryIDs: []string{"unknown"}}))
}

func TestQuery_Sort(t *testing.T) {
	products := fixtureProducts()

	cases := []struct {
		key  domain.SortKey
		want []string
	}{
		{domain.SortCreatedDesc, []string{"4", "3", "1", "2", "5"}},
		{domain.SortCreatedAsc, []string{"5", "2", "1", "3", "4"}},
		{domain.SortNameAsc, []string{"3", "5", "2", "4", "1"}},
		{domain.SortNameDesc, []string{"1", "4", "2", "5", "3"}},
		// ties keep catalog order: 3 before 5 (stock 5), 2 before 4 (price 10)
		{domain.SortStockAsc, []string{"3", "5", "1", "2", "4"}},
		{domain.SortStockDesc, []string{"4", "2", "1", "3", "5"}},
		{domain.SortPriceAsc, []string{"1", "2", "4", "5", "3"}},
		{domain.SortPriceDesc, []string{"3", "5", "2", "4", "1"}},
		{"", []string{"1", "2", "3", "4", "5"}},
		{"popularity", []string{"1", "2", "3", "4", "5"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Query(products, domain.QueryOptions{SortKey: tc.key})))
		})
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	products := fixtureProducts()
	before := ids(products)

	out := Query(products, domain.QueryOptions{SortKey: domain.SortPriceDesc})
	out[0].Name = "changed"

	assert.Equal(t, before, ids(products))
	assert.Equal(t, "T-shirt", products[0].Name)
}

func TestQuery_ConjunctionNeverAddsMatches(t *testing.T) {
	products := fixtureProducts()
	terms := []string{"", "s", "e", "sk", "zzz"}
	categorySets := [][]string{nil, {"vet"}, {"cha", "acc"}, {"none"}}

	for _, term := range terms {
		for _, cats := range categorySets {
			both := Query(products, domain.QueryOptions{SearchTerm: term, CategoryIDs: cats})
			bySearch := toSet(Query(products, domain.QueryOptions{SearchTerm: term}))
			byCategory := toSet(Query(products, domain.QueryOptions{CategoryIDs: cats}))
			for _, p := range both {
				assert.Contains(t, bySearch, p.ID)
				assert.Contains(t, byCategory, p.ID)
			}
		}
	}
}

func TestValidSortKey(t *testing.T) {
	assert.True(t, ValidSortKey(domain.SortStockAsc))
	assert.False(t, ValidSortKey("random"))
}

func toSet(products []domain.Product) map[string]bool {
	set := make(map[string]bool, len(products))
	for _, p := range products {
		set[p.ID] = true
	}
	return set
}
