package models

import (
	"time"

	"github.com/google/uuid"
)

// Purchase is the terminal record of a committed order. Keyed by the order's
// primary key, so the store guarantees at most one per order even under
// concurrent double-submission.
type Purchase struct {
	OrderID         uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	Order           *Order    `gorm:"foreignKey:OrderID"`
	DateCreated     time.Time `gorm:"column:date_created;autoCreateTime"`
	PaymentReceived bool      `gorm:"column:payment_received;not null;default:false"`
	Cancelled       bool      `gorm:"column:cancelled;not null;default:false"`
}
