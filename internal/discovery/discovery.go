// Package discovery computes the buyer-facing view of the active listing
// set: a pure filter/sort pipeline plus a polling snapshot of the corpus it
// runs against.
package discovery

import (
	"sort"
	"strconv"
	"strings"

	"github.com/scrazdxvf/baraholka-backend/internal/model"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// FilterSpec mirrors the search form. Price bounds arrive as raw strings;
// anything that does not parse as a number means "unbounded on that side".
type FilterSpec struct {
	Query       string
	Category    string
	Subcategory string
	City        string
	Condition   string
	MinPrice    string
	MaxPrice    string
	Sort        Sort
}

// Discover returns the ordered result set for spec over listings. Non-active
// records are dropped first, so callers may pass the full corpus. The input
// slice is never mutated and the function performs no I/O.
func Discover(listings []model.Listing, spec FilterSpec) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	query := strings.ToLower(strings.TrimSpace(spec.Query))
	minPrice, hasMin := parseBound(spec.MinPrice)
	maxPrice, hasMax := parseBound(spec.MaxPrice)

	for _, l := range listings {
		if l.Status != model.StatusActive {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(l.Title), query) &&
			!strings.Contains(strings.ToLower(l.Description), query) {
			continue
		}
		if spec.Category != "" && l.Category != spec.Category {
			continue
		}
		if spec.Subcategory != "" && l.Subcategory != spec.Subcategory {
			continue
		}
		if spec.City != "" && l.City != spec.City {
			continue
		}
		if spec.Condition != "" && string(l.Condition) != spec.Condition {
			continue
		}
		if hasMin && float64(l.Price) < minPrice {
			continue
		}
		if hasMax && float64(l.Price) > maxPrice {
			continue
		}
		out = append(out, l)
	}

	switch spec.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
