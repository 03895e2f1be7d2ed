package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDetail is an order line item. ProductID is nullable so order history
// survives product deletion.
type OrderDetail struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null;uniqueIndex:order_details_product_order_key"`
	ProductID *uuid.UUID      `gorm:"column:product_id;type:uuid;uniqueIndex:order_details_product_order_key"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
