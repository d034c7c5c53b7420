package listing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/and161185/ventas/internal/errs"
	"github.com/and161185/ventas/internal/model"
	"github.com/and161185/ventas/internal/utils"
)

// DateBound is one end of a date filter. A DateOnly upper bound covers the
// whole day.
type DateBound struct {
	Time     time.Time
	DateOnly bool
}

func ParseBound(s string, loc *time.Location) (*DateBound, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := utils.ParseTimestamp(s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidDate, err)
	}

	return &DateBound{Time: t, DateOnly: utils.IsDateOnly(s)}, nil
}

func (b *DateBound) upper() time.Time {
	if !b.DateOnly {
		return b.Time
	}
	y, m, d := b.Time.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), b.Time.Location())
}

// FilterAndSortSales returns the sales inside [from, to], most recent first.
// With any bound set, sales without a date are dropped. Ties go to the higher
// id. The input is not modified.
func FilterAndSortSales(sales []model.Sale, from, to *DateBound) []model.Sale {
	out := make([]model.Sale, 0, len(sales))
	for _, s := range sales {
		if inWindow(s, from, to) {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return saleBefore(out[i], out[j])
	})

	return out
}

func inWindow(s model.Sale, from, to *DateBound) bool {
	if from == nil && to == nil {
		return true
	}
	if s.SaleDate == nil {
		return false
	}
	if from != nil && s.SaleDate.Before(from.Time) {
		return false
	}
	if to != nil && s.SaleDate.After(to.upper()) {
		return false
	}
	return true
}

func saleBefore(a, b model.Sale) bool {
	switch {
	case a.SaleDate == nil && b.SaleDate == nil:
	case a.SaleDate == nil:
		return false
	case b.SaleDate == nil:
		return true
	case !a.SaleDate.Equal(*b.SaleDate):
		return a.SaleDate.After(*b.SaleDate)
	}
	return a.ID > b.ID
}

// Preset builds the quick ranges offered on the sales page: week, 15, 30 or all.
func Preset(name string, now time.Time) (*DateBound, *DateBound, error) {
	var days int
	switch name {
	case "", "all":
		return nil, nil, nil
	case "week":
		days = 7
	case "15":
		days = 15
	case "30":
		days = 30
	default:
		return nil, nil, fmt.Errorf("%w: unknown preset %q", errs.ErrInvalidDate, name)
	}

	from := &DateBound{Time: now.Add(-time.Duration(days) * 24 * time.Hour)}
	to := &DateBound{Time: now}
	return from, to, nil
}
