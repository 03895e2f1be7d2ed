package discounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
)

// Repository persists discounts and their category attachments.
type Repository struct {
	conn *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{conn: conn}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{conn: tx}
}

func (r *Repository) Create(ctx context.Context, discount *models.Discount) error {
	if err := r.conn.WithContext(ctx).Create(discount).Error; err != nil {
		return fmt.Errorf("creating discount: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Discount, error) {
	var discount models.Discount
	err := r.conn.WithContext(ctx).
		Preload("Categories").
		Where("id = ?", id).
		First(&discount).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading discount %s: %w", id, err)
	}
	return &discount, nil
}

func (r *Repository) Save(ctx context.Context, discount *models.Discount) error {
	if err := r.conn.WithContext(ctx).Save(discount).Error; err != nil {
		return fmt.Errorf("saving discount %s: %w", discount.ID, err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]models.Discount, error) {
	var rows []models.Discount
	err := r.conn.WithContext(ctx).Order("start DESC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing discounts: %w", err)
	}
	return rows, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.conn.WithContext(ctx).Where("id = ?", id).Delete(&models.Discount{})
	if res.Error != nil {
		return fmt.Errorf("deleting discount %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "discount not found")
	}
	return nil
}

// AttachCategories replaces the discount's category set.
func (r *Repository) AttachCategories(ctx context.Context, discount *models.Discount, categories []models.Category) error {
	err := r.conn.WithContext(ctx).Model(discount).Association("Categories").Replace(categories)
	if err != nil {
		return fmt.Errorf("attaching categories to discount %s: %w", discount.ID, err)
	}
	return nil
}

// LoadCategories resolves category ids, failing when any is unknown.
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
