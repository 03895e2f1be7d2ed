package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
)

// Admin-side queries. Unlike the shopper surface these see products that
// are out of production.

func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.conn.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.conn.WithContext(ctx).
		Preload("Categories").
		Where("id = ?", id).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading product %s: %w", id, err)
	}
	return &product, nil
}

func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) error {
	if err := r.conn.WithContext(ctx).Save(product).Error; err != nil {
		return fmt.Errorf("saving product %s: %w", product.ID, err)
	}
	return nil
}

func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.conn.WithContext(ctx).Order("date_created DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return rows, nil
}

// AttachProductCategories replaces a product's category set.
func (r *Repository) AttachProductCategories(ctx context.Context, product *models.Product, categories []models.Category) error {
	err := r.conn.WithContext(ctx).Model(product).Association("Categories").Replace(categories)
	if err != nil {
		return fmt.Errorf("attaching categories to product %s: %w", product.ID, err)
	}
	return nil
}

func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := r.conn.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("creating category: %w", err)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading category %s: %w", id, err)
	}
	return &category, nil
}

func (r *Repository) SaveCategory(ctx context.Context, category *models.Category) error {
	if err := r.conn.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("saving category %s: %w", category.ID, err)
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.conn.WithContext(ctx).Order("name ASC, value ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return rows, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res := r.conn.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{})
	if res.Error != nil {
		return fmt.Errorf("deleting category %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

func (r *Repository) LoadCategories(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Category
	err := r.conn.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	if len(rows) != len(ids) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return rows, nil
}
