package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
)

// Repository persists carts and their additions.
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

// GetOrCreateByUser resolves the user's single cart, inserting it when the
// shopper has none yet. The partial unique index absorbs two concurrent
// first requests; the loser's insert is a no-op and both read the same row.
func (r *Repository) GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	err := r.conn.WithContext(ctx).Exec(
		`INSERT INTO carts (id, user_id)
		 VALUES (?, ?)
		 ON CONFLICT (user_id) WHERE user_id IS NOT NULL DO NOTHING`,
		uuid.New(), userID,
	).Error
	if err != nil {
		return nil, fmt.Errorf("inserting cart: %w", err)
	}

	var cart models.Cart
	if err := r.conn.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, fmt.Errorf("loading cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

// GetByID loads a cart by its primary key, or nil when it does not exist.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading cart %s: %w", id, err)
	}
	return &cart, nil
}

// Create inserts a cart. UserID is nil for anonymous shoppers.
func (r *Repository) Create(ctx context.Context, userID *uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := r.conn.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("creating cart: %w", err)
	}
	return &cart, nil
}

// GetOrCreateAddition returns the (cart, product) line, inserting it with
// the given defaults when absent. The unique index makes the insert a no-op
// when another request won the race.
func (r *Repository) GetOrCreateAddition(
	ctx context.Context,
	cartID, productID uuid.UUID,
	quantity decimal.Decimal,
) (*models.Addition, bool, error) {
	res := r.conn.WithContext(ctx).Exec(
		`INSERT INTO additions (cart_id, product_id, quantity, order_now)
		 VALUES (?, ?, ?, TRUE)
		 ON CONFLICT (cart_id, product_id) DO NOTHING`,
		cartID, productID, quantity,
	)
	if res.Error != nil {
		return nil, false, fmt.Errorf("inserting addition: %w", res.Error)
	}

	var addition models.Addition
	err := r.conn.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&addition).Error
	if err != nil {
		return nil, false, fmt.Errorf("loading addition: %w", err)
	}
	return &addition, res.RowsAffected > 0, nil
}

// GetAddition loads a line by id scoped to its cart, so one shopper can
// never address another's additions.
func (r *Repository) GetAddition(ctx context.Context, cartID, additionID uuid.UUID) (*models.Addition, error) {
	var addition models.Addition
	err := r.conn.WithContext(ctx).
		Where("id = ? AND cart_id = ?", additionID, cartID).
		First(&addition).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading addition %s: %w", additionID, err)
	}
	return &addition, nil
}

// SaveAddition persists quantity/order_now changes through the model hooks.
func (r *Repository) SaveAddition(ctx context.Context, addition *models.Addition) error {
	if err := r.conn.WithContext(ctx).Save(addition).Error; err != nil {
		return fmt.Errorf("saving addition %s: %w", addition.ID, err)
	}
	return nil
}

// ListAdditions returns every non-empty line of a cart with its product.
func (r *Repository) ListAdditions(ctx context.Context, cartID uuid.UUID) ([]models.Addition, error) {
	var rows []models.Addition
	err := r.conn.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ? AND quantity > ?", cartID, decimal.Zero).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing additions for cart %s: %w", cartID, err)
	}
	return rows, nil
}

// ListOrderNow returns the lines flagged for the next checkout.
func (r *Repository) ListOrderNow(ctx context.Context, cartID uuid.UUID) ([]models.Addition, error) {
	var rows []models.Addition
	err := r.conn.WithContext(ctx).
		Where("cart_id = ? AND order_now AND quantity > ?", cartID, decimal.Zero).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing order-now additions for cart %s: %w", cartID, err)
	}
	return rows, nil
}
