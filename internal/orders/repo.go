package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
)

// Repository persists orders, their line details, shipments and purchases.
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

func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := r.conn.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	return nil
}

// CreateDetails bulk-inserts the order's line details.
func (r *Repository) CreateDetails(ctx context.Context, details []models.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	if err := r.conn.WithContext(ctx).Create(&details).Error; err != nil {
		return fmt.Errorf("creating order details: %w", err)
	}
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.conn.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading order %s: %w", id, err)
	}
	return &order, nil
}

func (r *Repository) SaveOrder(ctx context.Context, order *models.Order) error {
	if err := r.conn.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("saving order %s: %w", order.ID, err)
	}
	return nil
}

// ListDetails returns the order's lines with their products preloaded.
func (r *Repository) ListDetails(ctx context.Context, orderID uuid.UUID) ([]models.OrderDetail, error) {
	var rows []models.OrderDetail
	err := r.conn.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing details for order %s: %w", orderID, err)
	}
	return rows, nil
}

// GetOrCreateShipment resolves a saved delivery address, inserting it when
// the shopper has not used it before. Anonymous addresses carry a NULL user
// id, which a composite arbiter never treats as a conflict, so they dedupe
// through their own partial index instead.
func (r *Repository) GetOrCreateShipment(ctx context.Context, userID *uuid.UUID, address, zip string) (*models.Shipment, error) {
	var res *gorm.DB
	if userID != nil {
		res = r.conn.WithContext(ctx).Exec(
			`INSERT INTO shipments (user_id, address, zip)
			 VALUES (?, ?, ?)
			 ON CONFLICT (user_id, address) WHERE user_id IS NOT NULL DO NOTHING`,
			*userID, address, zip,
		)
	} else {
		res = r.conn.WithContext(ctx).Exec(
			`INSERT INTO shipments (user_id, address, zip)
			 VALUES (NULL, ?, ?)
			 ON CONFLICT (address) WHERE user_id IS NULL DO NOTHING`,
			address, zip,
		)
	}
	if res.Error != nil {
		return nil, fmt.Errorf("inserting shipment: %w", res.Error)
	}

	var shipment models.Shipment
	qb := r.conn.WithContext(ctx).Where("address = ?", address)
	if userID != nil {
		qb = qb.Where("user_id = ?", *userID)
	} else {
		qb = qb.Where("user_id IS NULL")
	}
	if err := qb.First(&shipment).Error; err != nil {
		return nil, fmt.Errorf("loading shipment: %w", err)
	}
	return &shipment, nil
}

// CreatePurchase commits an order to purchase at most once. The purchase
// row is keyed by the order id, so a concurrent double-submit collapses to
// a single insert and both callers read back the same row.
func (r *Repository) CreatePurchase(ctx context.Context, orderID uuid.UUID) (*models.Purchase, bool, error) {
	res := r.conn.WithContext(ctx).Exec(
		`INSERT INTO purchases (order_id) VALUES (?)
		 ON CONFLICT (order_id) DO NOTHING`,
		orderID,
	)
	if res.Error != nil {
		return nil, false, fmt.Errorf("inserting purchase: %w", res.Error)
	}

	purchase, err := r.GetPurchase(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	return purchase, res.RowsAffected > 0, nil
}

func (r *Repository) GetPurchase(ctx context.Context, orderID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.conn.WithContext(ctx).Where("order_id = ?", orderID).First(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading purchase for order %s: %w", orderID, err)
	}
	return &purchase, nil
}
