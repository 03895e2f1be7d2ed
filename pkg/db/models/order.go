package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order starts as an unconfirmed draft assembled from the cart (or a single
// product) and becomes confirmed once purchaser/receiver data validates.
// Deleting the shopper clears UserID rather than cascading.
type Order struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         *uuid.UUID      `gorm:"column:user_id;type:uuid"`
	Purchaser      string          `gorm:"column:purchaser;not null;default:''"`
	PurchaserEmail string          `gorm:"column:purchaser_email;not null;default:''"`
	Receiver       string          `gorm:"column:receiver;not null;default:''"`
	ReceiverPhone  string          `gorm:"column:receiver_phone;not null;default:''"`
	AsIndividual   bool            `gorm:"column:as_individual;not null;default:false"`
	ShipmentID     *uuid.UUID      `gorm:"column:shipment_id;type:uuid"`
	Shipment       *Shipment       `gorm:"foreignKey:ShipmentID"`
	ShipmentCost   decimal.Decimal `gorm:"column:shipment_cost;type:numeric(12,2);not null;default:0"`
	Shipped        bool            `gorm:"column:shipped;not null;default:false"`
	Confirmed      bool            `gorm:"column:confirmed;not null;default:false"`
	Details        []OrderDetail   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DateCreated    time.Time       `gorm:"column:date_created;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
