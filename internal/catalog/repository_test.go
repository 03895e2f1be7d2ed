package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:catalogtest?mode=memory&cache=shared"), &gorm.Config{})
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
		`CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  value TEXT NOT NULL,
  parent_id TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS product_categories (
  product_id TEXT NOT NULL,
  category_id TEXT NOT NULL,
  PRIMARY KEY (product_id, category_id)
);`,
		`CREATE TABLE IF NOT EXISTS likes (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  liked INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
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
		`DELETE FROM categories;`,
		`DELETE FROM product_categories;`,
		`DELETE FROM likes;`,
		`DELETE FROM additions;`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, inProduction bool) models.Product {
	t.Helper()
	product := models.Product{
		SKU:              "sku-" + uuid.NewString(),
		Name:             name,
		Price:            decimal.RequireFromString(price),
		Quantity:         decimal.RequireFromString("100"),
		MinOrderQuantity: decimal.RequireFromString("1"),
		InProduction:     inProduction,
	}
	require.NoError(t, db.Create(&product).Error)
	// gorm skips zero-value fields that carry a default tag, so a false
	// in_production never reaches the insert; set it explicitly.
	if !inProduction {
		require.NoError(t, db.Model(&product).Update("in_production", false).Error)
	}
	return product
}

func tagProduct(t *testing.T, db *gorm.DB, product models.Product, name, value string) {
	t.Helper()
	category := models.Category{Name: name, Value: value}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO product_categories (product_id, category_id) VALUES (?, ?)`,
		product.ID, category.ID,
	).Error)
}

func TestListHidesOutOfProductionProducts(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	visible := seedProduct(t, db, "chair", "10.00", true)
	seedProduct(t, db, "ghost", "10.00", false)

	rows, total, err := repo.List(context.Background(), Filters{}, Sort{}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, visible.ID, rows[0].ID)
}

func TestListFacetsWidenWithinTypeAndNarrowAcrossTypes(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	redChair := seedProduct(t, db, "red chair", "10.00", true)
	tagProduct(t, db, redChair, "colour", "red")
	tagProduct(t, db, redChair, "furniture", "chair")

	blueChair := seedProduct(t, db, "blue chair", "10.00", true)
	tagProduct(t, db, blueChair, "colour", "blue")
	tagProduct(t, db, blueChair, "furniture", "chair")

	redTable := seedProduct(t, db, "red table", "10.00", true)
	tagProduct(t, db, redTable, "colour", "red")
	tagProduct(t, db, redTable, "furniture", "table")

	// Two values of the same type match both chairs.
	rows, total, err := repo.List(context.Background(), Filters{
		Categories: map[string][]string{"colour": {"red", "blue"}},
	}, Sort{Key: SortByName, Ascending: true}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, rows, 3)

	// Adding a second type narrows to products holding both.
	rows, total, err = repo.List(context.Background(), Filters{
		Categories: map[string][]string{
			"colour":    {"red"},
			"furniture": {"chair"},
		},
	}, Sort{}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, redChair.ID, rows[0].ID)
}

func TestListPriceRangeAndInvertedBounds(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "cheap", "5.00", true)
	mid := seedProduct(t, db, "mid", "50.00", true)
	seedProduct(t, db, "dear", "500.00", true)

	lo := decimal.RequireFromString("10.00")
	hi := decimal.RequireFromString("100.00")

	rows, total, err := repo.List(context.Background(), Filters{PriceMin: &lo, PriceMax: &hi}, Sort{}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, mid.ID, rows[0].ID)

	_, _, err = repo.List(context.Background(), Filters{PriceMin: &hi, PriceMax: &lo}, Sort{}, pagination.Params{Page: 1, Size: 10})
	require.Error(t, err)
	fields := pkgerrors.FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, pkgerrors.FieldCodeMinGtMax, fields[0].Code)
}

func TestListRetailOnlyRequiresServableStock(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	servable := seedProduct(t, db, "servable", "10.00", true)

	bulky := models.Product{
		SKU:              "sku-bulk",
		Name:             "bulk only",
		Price:            decimal.RequireFromString("10.00"),
		Quantity:         decimal.RequireFromString("5"),
		MinOrderQuantity: decimal.RequireFromString("50"),
		InProduction:     true,
	}
	require.NoError(t, db.Create(&bulky).Error)

	empty := models.Product{
		SKU:              "sku-empty",
		Name:             "sold out",
		Price:            decimal.RequireFromString("10.00"),
		Quantity:         decimal.Zero,
		MinOrderQuantity: decimal.RequireFromString("1"),
		InProduction:     true,
	}
	require.NoError(t, db.Create(&empty).Error)

	rows, total, err := repo.List(context.Background(), Filters{RetailOnly: true}, Sort{}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, servable.ID, rows[0].ID)
}

func TestListPopularitySortCountsActiveLikes(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	quiet := seedProduct(t, db, "quiet", "10.00", true)
	popular := seedProduct(t, db, "popular", "10.00", true)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Like{
			UserID:    uuid.New(),
			ProductID: popular.ID,
			Liked:     true,
		}).Error)
	}
	// An un-liked row must not count.
	require.NoError(t, db.Create(&models.Like{
		UserID:    uuid.New(),
		ProductID: quiet.ID,
		Liked:     false,
	}).Error)

	rows, _, err := repo.List(context.Background(), Filters{}, Sort{Key: SortByPopularity}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, popular.ID, rows[0].ID)
}

func TestListPaginationNormalizesPage(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	for i := 0; i < 5; i++ {
		seedProduct(t, db, "item", "10.00", true)
	}

	rows, total, err := repo.List(context.Background(), Filters{}, Sort{}, pagination.Params{Page: 0, Size: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, rows, 4)

	rows, _, err = repo.List(context.Background(), Filters{}, Sort{}, pagination.Params{Page: 2, Size: 4})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGetInProductionRejectsRetiredProduct(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	retired := seedProduct(t, db, "retired", "10.00", false)

	_, err := repo.GetInProduction(context.Background(), retired.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestPriceBounds(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "low", "5.50", true)
	seedProduct(t, db, "high", "99.90", true)
	seedProduct(t, db, "hidden", "1000.00", false)

	min, max, err := repo.PriceBounds(context.Background())
	require.NoError(t, err)
	assert.True(t, min.Equal(decimal.RequireFromString("5.5")), "min = %s", min)
	assert.True(t, max.Equal(decimal.RequireFromString("99.9")), "max = %s", max)
}
