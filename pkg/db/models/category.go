package models

import (
	"time"

	"github.com/google/uuid"
)

// Category tags products along one facet. Name is the facet type
// ("colour", "size", "furniture type") and Value the concrete tag within it.
// Parent forms an optional tree of facets.
type Category struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null;index:categories_name_idx"`
	Value     string     `gorm:"column:value;not null"`
	ParentID  *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	Parent    *Category  `gorm:"foreignKey:ParentID"`
	Products  []Product  `gorm:"many2many:product_categories"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
