package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog listing. Quantities and prices are fixed-point
// decimals because goods are sold in fractional units (meters, kilograms).
type Product struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU              string          `gorm:"column:sku;not null;uniqueIndex:products_sku_key"`
	Name             string          `gorm:"column:name;not null"`
	Description      string          `gorm:"column:description;not null;default:''"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	UnitMeasure      string          `gorm:"column:unit_measure;not null;default:'units'"`
	Quantity         decimal.Decimal `gorm:"column:quantity;type:numeric(12,2);not null;default:0"`
	MinOrderQuantity decimal.Decimal `gorm:"column:min_order_quantity;type:numeric(12,2);not null"`
	InProduction     bool            `gorm:"column:in_production;not null;default:true"`
	DiscountID       *uuid.UUID      `gorm:"column:discount_id;type:uuid"`
	Categories       []Category      `gorm:"many2many:product_categories"`
	DateCreated      time.Time       `gorm:"column:date_created;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeSave rejects products without a positive minimum order quantity.
// A product that cannot state its smallest sellable amount must not persist.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.MinOrderQuantity.IsZero() || p.MinOrderQuantity.IsNegative() {
		return gorm.ErrInvalidData
	}
	return nil
}
