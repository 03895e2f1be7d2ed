package catalog

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/kamalsite/backend/pkg/errors"
)

// Filters narrows the catalog listing. Categories maps a facet type
// ("colour", "size") to the accepted values within it. Values within one
// type widen the match; different types narrow it.
type Filters struct {
	Categories map[string][]string `json:"categories,omitempty"`
	PriceMin   *decimal.Decimal    `json:"price_min,omitempty"`
	PriceMax   *decimal.Decimal    `json:"price_max,omitempty"`
	RetailOnly bool                `json:"retail_only,omitempty"`
}

// Validate rejects an inverted price range before any query is built.
func (f Filters) Validate() error {
	if f.PriceMin != nil && f.PriceMax != nil && f.PriceMin.GreaterThan(*f.PriceMax) {
		return pkgerrors.NewFieldError("price_min", pkgerrors.FieldCodeMinGtMax,
			"minimum price exceeds maximum price", map[string]any{
				"min": f.PriceMin.String(),
				"max": f.PriceMax.String(),
			})
	}
	return nil
}

// IsZero reports whether the filter narrows anything at all.
func (f Filters) IsZero() bool {
	return len(f.Categories) == 0 && f.PriceMin == nil && f.PriceMax == nil && !f.RetailOnly
}

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByPrice      SortKey = "price"
	SortByNovelty    SortKey = "novelty"
	SortByPopularity SortKey = "popularity"
)

// Sort orders the catalog listing. The storefront opens on most-liked
// first; unknown keys fall back to that same default so a stale session
// setting never breaks the page.
type Sort struct {
	Key       SortKey `json:"key"`
	Ascending bool    `json:"ascending"`
}

func (s Sort) Normalize() Sort {
	switch s.Key {
	case SortByName, SortByPrice, SortByNovelty, SortByPopularity:
		return s
	default:
		return Sort{Key: SortByPopularity, Ascending: false}
	}
}
