package listing

import (
	"sort"
	"strings"

	"github.com/and161185/ventas/internal/model"
)

const PerPage = 6

// SortOrders returns orders newest first by id.
func SortOrders(orders []model.Order) []model.Order {
	out := append([]model.Order(nil), orders...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}

// SearchProducts keeps products whose name or category contains term, ignoring
// case, newest first.
func SearchProducts(products []model.Product, term string) []model.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) ||
			(p.Category != nil && strings.Contains(strings.ToLower(p.Category.Name), term)) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}

// Paginate cuts a 1-based page. Pages out of range are empty.
func Paginate[T any](items []T, page, perPage int) model.Page[T] {
	if perPage <= 0 {
		perPage = PerPage
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	result := model.Page[T]{
		Items:      []T{},
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}

	if page > result.TotalPages {
		return result
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	result.Items = items[start:end]
	return result
}
