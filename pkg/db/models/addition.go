package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Addition is a cart line item. At most one exists per (product, cart);
// removing a product from the cart zeroes the quantity instead of deleting
// the row.
type Addition struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:additions_product_cart_key"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:additions_product_cart_key"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:numeric(12,2);not null;default:0"`
	OrderNow  bool            `gorm:"column:order_now;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeSave keeps a zero-quantity line out of the next checkout no matter
// what the caller set on OrderNow.
func (a *Addition) BeforeSave(tx *gorm.DB) error {
	if a.Quantity.Sign() <= 0 {
		a.OrderNow = false
	}
	return nil
}
