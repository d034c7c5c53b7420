package listing

import (
	"math"
	"testing"

	"github.com/and161185/ventas/internal/model"
	"github.com/stretchr/testify/require"
)

func TestSortOrders(t *testing.T) {
	orders := []model.Order{{ID: 2}, {ID: 9}, {ID: 5}}

	got := SortOrders(orders)
	require.Equal(t, []model.Order{{ID: 9}, {ID: 5}, {ID: 2}}, got)
	require.Equal(t, 2, orders[0].ID)
}

func TestSearchProducts(t *testing.T) {
	drinks := &model.Category{ID: 1, Name: "Bebidas"}
	products := []model.Product{
		{ID: 1, Name: "Pan", Category: &model.Category{ID: 2, Name: "Panaderia"}},
		{ID: 2, Name: "Agua mineral", Category: drinks},
		{ID: 3, Name: "Jugo", Category: drinks},
		{ID: 4, Name: "Sin categoria"},
	}

	tests := []struct {
		term string
		ids  []int
	}{
		{"", []int{4, 3, 2, 1}},
		{"bebi", []int{3, 2}},
		{"AGUA", []int{2}},
		{"pan", []int{1}},
		{"zzz", []int{}},
	}

	for _, tt := range tests {
		got := SearchProducts(products, tt.term)
		gotIDs := []int{}
		for _, p := range got {
			gotIDs = append(gotIDs, p.ID)
		}
		require.Equal(t, tt.ids, gotIDs, tt.term)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	tests := []struct {
		name    string
		page    int
		perPage int
		want    []int
		pages   int
	}{
		{"first", 1, 6, []int{1, 2, 3, 4, 5, 6}, 2},
		{"last", 2, 6, []int{7, 8}, 2},
		{"past end", 3, 6, []int{}, 2},
		{"zero page", 0, 3, []int{1, 2, 3}, 3},
		{"default size", 1, 0, []int{1, 2, 3, 4, 5, 6}, 2},
		{"huge page", math.MaxInt/2 + 2, 6, []int{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.page, tt.perPage)
			require.Equal(t, tt.want, page.Items)
			require.Equal(t, tt.pages, page.TotalPages)
			require.Equal(t, len(items), page.TotalItems)
		})
	}

	empty := Paginate([]int(nil), 1, 6)
	require.Empty(t, empty.Items)
	require.Zero(t, empty.TotalPages)
}
