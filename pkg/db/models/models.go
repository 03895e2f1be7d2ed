// Package models holds the persistence schema shared by every domain
// package. Primary keys are uuids minted client-side so the models behave
// the same against Postgres and the in-memory test driver.
package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

func (a *Addition) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}

func (d *OrderDetail) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}

func (s *Shipment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}

func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}
