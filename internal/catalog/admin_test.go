package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
	"github.com/kamalsite/backend/pkg/pagination"
)

func newAdminService(t *testing.T, db *gorm.DB) AdminService {
	t.Helper()
	svc, err := NewAdminService(AdminServiceParams{
		Repo:   NewRepository(db),
		Logger: logger.New(logger.Options{ServiceName: "test"}),
	})
	require.NoError(t, err)
	return svc
}

func TestCreateProductWithCategories(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newAdminService(t, db)

	category := models.Category{Name: "furniture", Value: "chair"}
	require.NoError(t, db.Create(&category).Error)

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		SKU:              "sku-100",
		Name:             "windsor chair",
		Price:            decimal.RequireFromString("120.00"),
		Quantity:         decimal.RequireFromString("8"),
		MinOrderQuantity: decimal.RequireFromString("1"),
		InProduction:     true,
		CategoryIDs:      []uuid.UUID{category.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "units", product.UnitMeasure, "unit of measure defaults")

	var count int64
	require.NoError(t, db.Table("product_categories").
		Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRetireProductHidesItFromTheStorefront(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newAdminService(t, db)
	repo := NewRepository(db)

	product := seedProduct(t, db, "to retire", "10.00", true)
	require.NoError(t, svc.RetireProduct(context.Background(), product.ID))

	_, err := repo.GetInProduction(context.Background(), product.ID)
	require.Error(t, err)

	// The admin surface still sees it for order history.
	kept, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.False(t, kept.InProduction)

	_, total, err := repo.List(context.Background(), Filters{}, Sort{}, pagination.Params{Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUpdateCategoryRejectsCycle(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newAdminService(t, db)

	root, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "material", Value: "wood"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(context.Background(), CategoryInput{
		Name: "material", Value: "oak", ParentID: &root.ID,
	})
	require.NoError(t, err)

	// Reparenting the root under its own descendant closes a loop.
	_, err = svc.UpdateCategory(context.Background(), root.ID, CategoryInput{
		Name: "material", Value: "wood", ParentID: &child.ID,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// Direct self-parenting is the one-node loop.
	_, err = svc.UpdateCategory(context.Background(), root.ID, CategoryInput{
		Name: "material", Value: "wood", ParentID: &root.ID,
	})
	require.Error(t, err)
}

func TestCreateCategoryRequiresExistingParent(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := newAdminService(t, db)

	phantom := uuid.New()
	_, err := svc.CreateCategory(context.Background(), CategoryInput{
		Name: "material", Value: "oak", ParentID: &phantom,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
