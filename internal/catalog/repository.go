package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/pagination"
)

// Repository composes catalog queries over the products table.
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

// List returns one page of in-production products matching the filters,
// plus the total match count for page-count math.
func (r *Repository) List(ctx context.Context, f Filters, s Sort, p pagination.Params) ([]models.Product, int64, error) {
	if err := f.Validate(); err != nil {
		return nil, 0, err
	}

	qb := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("in_production = ?", true)

	// Facet semantics: values within one category type widen the match,
	// distinct types all have to hold.
	for name, values := range f.Categories {
		if len(values) == 0 {
			continue
		}
		qb = qb.Where(
			"EXISTS (SELECT 1 FROM product_categories pc JOIN categories c ON c.id = pc.category_id "+
				"WHERE pc.product_id = products.id AND c.name = ? AND c.value IN ?)",
			name, values,
		)
	}

	if f.PriceMin != nil {
		qb = qb.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		qb = qb.Where("price <= ?", *f.PriceMax)
	}
	if f.RetailOnly {
		qb = qb.Where("min_order_quantity <= quantity AND quantity > ?", decimal.Zero)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	qb = applySort(qb, s.Normalize())

	var rows []models.Product
	norm := p.Normalize()
	if err := qb.Offset(norm.Offset()).Limit(norm.Size).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("listing products: %w", err)
	}
	return rows, total, nil
}

func applySort(qb *gorm.DB, s Sort) *gorm.DB {
	dir := "DESC"
	if s.Ascending {
		dir = "ASC"
	}
	switch s.Key {
	case SortByName:
		return qb.Order("name " + dir)
	case SortByPrice:
		return qb.Order("price " + dir)
	case SortByPopularity:
		return qb.Order(fmt.Sprintf(
			"(SELECT COUNT(*) FROM likes l WHERE l.product_id = products.id AND l.liked) %s", dir))
	default:
		return qb.Order("date_created " + dir)
	}
}

// GetInProduction looks up a single listed product. Products pulled from
// production are invisible to shoppers, not just filtered from the list.
func (r *Repository) GetInProduction(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.conn.WithContext(ctx).
		Where("id = ? AND in_production = ?", id, true).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading product %s: %w", id, err)
	}
	return &product, nil
}

// PriceBounds returns the lowest and highest listed price, for the filter
// form's range inputs. Both are zero when nothing is listed.
func (r *Repository) PriceBounds(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Min decimal.NullDecimal
		Max decimal.NullDecimal
	}
	err := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Select("MIN(price) AS min, MAX(price) AS max").
		Where("in_production = ?", true).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("price bounds: %w", err)
	}
	return row.Min.Decimal, row.Max.Decimal, nil
}

// LikedProductIDs reports which of the given products the user currently likes.
func (r *Repository) LikedProductIDs(ctx context.Context, userID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	var ids []uuid.UUID
	err := r.conn.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND product_id IN ? AND liked", userID, productIDs).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("loading likes: %w", err)
	}
	return toSet(ids), nil
}

// InCartProductIDs reports which of the given products sit in the cart with
// a positive quantity.
func (r *Repository) InCartProductIDs(ctx context.Context, cartID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(productIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	var ids []uuid.UUID
	err := r.conn.WithContext(ctx).
		Model(&models.Addition{}).
		Where("cart_id = ? AND product_id IN ? AND quantity > ?", cartID, productIDs, decimal.Zero).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("loading cart additions: %w", err)
	}
	return toSet(ids), nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
