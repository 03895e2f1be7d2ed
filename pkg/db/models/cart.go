package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart belongs to one shopper. Anonymous shoppers get a cart with a nil
// user, addressed by the cart id stored in their session.
type Cart struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID `gorm:"column:user_id;type:uuid;uniqueIndex:carts_user_key"`
	Additions []Addition `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
