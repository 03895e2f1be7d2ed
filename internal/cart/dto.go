package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamalsite/backend/pkg/db/models"
)

// Item is one renderable cart line.
type Item struct {
	AdditionID  uuid.UUID       `json:"addition_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	UnitMeasure string          `json:"unit_measure"`
	Quantity    decimal.Decimal `json:"quantity"`
	OrderNow    bool            `json:"order_now"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// View is the whole cart as the storefront renders it.
type View struct {
	CartID     uuid.UUID       `json:"cart_id"`
	Items      []Item          `json:"items"`
	GoodsTotal decimal.Decimal `json:"goods_total"`
}

func newView(cartID uuid.UUID, rows []models.Addition) *View {
	view := &View{CartID: cartID, Items: make([]Item, 0, len(rows)), GoodsTotal: decimal.Zero}
	for _, row := range rows {
		item := Item{
			AdditionID: row.ID,
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			OrderNow:   row.OrderNow,
		}
		if row.Product != nil {
			item.Name = row.Product.Name
			item.Price = row.Product.Price
			item.UnitMeasure = row.Product.UnitMeasure
			item.LineTotal = row.Product.Price.Mul(row.Quantity)
		}
		view.Items = append(view.Items, item)
		view.GoodsTotal = view.GoodsTotal.Add(item.LineTotal)
	}
	return view
}
