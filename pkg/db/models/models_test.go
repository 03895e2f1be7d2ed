package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupModelsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:modelstest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  unit_measure TEXT NOT NULL DEFAULT 'units',
  quantity NUMERIC NOT NULL DEFAULT 0,
  min_order_quantity NUMERIC NOT NULL,
  in_production INTEGER NOT NULL DEFAULT 1,
  discount_id TEXT,
  date_created DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS additions (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 0,
  order_now INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`DELETE FROM products;`,
		`DELETE FROM additions;`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func TestProductRejectsNonPositiveMinOrderQuantity(t *testing.T) {
	db := setupModelsTestDB(t)

	product := Product{
		SKU:              "sku-1",
		Name:             "stool",
		Price:            decimal.RequireFromString("10.00"),
		MinOrderQuantity: decimal.Zero,
	}
	err := db.Create(&product).Error
	require.Error(t, err)

	product.MinOrderQuantity = decimal.RequireFromString("1")
	require.NoError(t, db.Create(&product).Error)
	assert.NotEqual(t, uuid.Nil, product.ID, "id minted client-side")
}

func TestAdditionZeroQuantityClearsOrderNow(t *testing.T) {
	db := setupModelsTestDB(t)

	addition := Addition{
		CartID:    uuid.New(),
		ProductID: uuid.New(),
		Quantity:  decimal.RequireFromString("3"),
		OrderNow:  true,
	}
	require.NoError(t, db.Create(&addition).Error)
	assert.True(t, addition.OrderNow)

	addition.Quantity = decimal.Zero
	require.NoError(t, db.Save(&addition).Error)

	var stored Addition
	require.NoError(t, db.Where("id = ?", addition.ID).First(&stored).Error)
	assert.True(t, stored.Quantity.IsZero())
	assert.False(t, stored.OrderNow)
}
