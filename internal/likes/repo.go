package likes

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
)

// Repository persists per-user product likes.
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

// Ensure inserts the (user, product) row unliked when it does not exist.
// The unique index absorbs concurrent first toggles.
func (r *Repository) Ensure(ctx context.Context, userID, productID uuid.UUID) error {
	err := r.conn.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, product_id, liked)
		 VALUES (?, ?, FALSE)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID,
	).Error
	if err != nil {
		return fmt.Errorf("inserting like: %w", err)
	}
	return nil
}

// Toggle flips the stored flag in the database, so concurrent toggles
// serialize on the row instead of racing a read-modify-write.
func (r *Repository) Toggle(ctx context.Context, userID, productID uuid.UUID) error {
	err := r.conn.WithContext(ctx).Exec(
		`UPDATE likes SET liked = NOT liked, updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	).Error
	if err != nil {
		return fmt.Errorf("toggling like: %w", err)
	}
	return nil
}

// Get reloads the row after a toggle.
func (r *Repository) Get(ctx context.Context, userID, productID uuid.UUID) (*models.Like, error) {
	var like models.Like
	err := r.conn.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&like).Error
	if err != nil {
		return nil, fmt.Errorf("loading like: %w", err)
	}
	return &like, nil
}

// CountForProduct counts active likes, the popularity input for sorting.
func (r *Repository) CountForProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn.WithContext(ctx).
		Model(&models.Like{}).
		Where("product_id = ? AND liked", productID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting likes: %w", err)
	}
	return count, nil
}
