package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamalsite/backend/pkg/db/models"
	"github.com/kamalsite/backend/pkg/pagination"
)

// ProductView is a product as the storefront renders it, with the
// per-shopper affordance flags resolved.
type ProductView struct {
	ID               uuid.UUID       `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	UnitMeasure      string          `json:"unit_measure"`
	Quantity         decimal.Decimal `json:"quantity"`
	MinOrderQuantity decimal.Decimal `json:"min_order_quantity"`
	Liked            bool            `json:"liked"`
	InCart           bool            `json:"in_cart"`
}

// ListPage is one page of the catalog listing.
type ListPage struct {
	Products []ProductView   `json:"products"`
	Meta     pagination.Meta `json:"meta"`
}

// PriceRange bounds the filter form's price inputs.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func newProductView(p models.Product, liked, inCart bool) ProductView {
	return ProductView{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		UnitMeasure:      p.UnitMeasure,
		Quantity:         p.Quantity,
		MinOrderQuantity: p.MinOrderQuantity,
		Liked:            liked,
		InCart:           inCart,
	}
}
