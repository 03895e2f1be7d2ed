package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records whether a shopper currently likes a product. Toggling flips
// the boolean in place; rows are never duplicated per (user, product).
type Like struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:likes_user_product_key"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:likes_user_product_key;index:likes_product_idx"`
	Liked     bool      `gorm:"column:liked;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
