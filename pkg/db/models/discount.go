package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Discount applies a percentage off to the categories it is attached to.
// Groups restricts applicability to user segments; empty means everyone.
type Discount struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reason     string         `gorm:"column:reason;not null"`
	Percent    int            `gorm:"column:percent;not null"`
	Seasonal   bool           `gorm:"column:seasonal;not null;default:false"`
	Start      time.Time      `gorm:"column:start;not null"`
	End        time.Time      `gorm:"column:end;not null"`
	Groups     pq.StringArray `gorm:"column:groups;type:text[]"`
	Categories []Category     `gorm:"many2many:discount_categories"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
}
