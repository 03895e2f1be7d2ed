package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipment is a saved delivery address, unique per (user, address). The
// uniqueness lives in two partial indexes, one for owned addresses and one
// for anonymous (NULL user) ones, since NULLs never collide in a composite
// index.
type Shipment struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid"`
	Address   string     `gorm:"column:address;not null"`
	Zip       string     `gorm:"column:zip;not null;default:''"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
