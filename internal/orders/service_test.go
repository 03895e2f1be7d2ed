package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/internal/cart"
	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type stubProducts struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProducts) GetInProduction(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:orderstest?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  purchaser TEXT NOT NULL DEFAULT '',
  purchaser_email TEXT NOT NULL DEFAULT '',
  receiver TEXT NOT NULL DEFAULT '',
  receiver_phone TEXT NOT NULL DEFAULT '',
  as_individual INTEGER NOT NULL DEFAULT 0,
  shipment_id TEXT,
  shipment_cost NUMERIC NOT NULL DEFAULT 0,
  shipped INTEGER NOT NULL DEFAULT 0,
  confirmed INTEGER NOT NULL DEFAULT 0,
  date_created DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_details (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  quantity NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  UNIQUE (order_id, product_id)
);`,
		`CREATE TABLE IF NOT EXISTS purchases (
  order_id TEXT PRIMARY KEY,
  date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
  payment_received INTEGER NOT NULL DEFAULT 0,
  cancelled INTEGER NOT NULL DEFAULT 0
);`,
		`CREATE TABLE IF NOT EXISTS shipments (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
  user_id TEXT,
  address TEXT NOT NULL,
  zip TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS shipments_user_address_key ON shipments (user_id, address) WHERE user_id IS NOT NULL;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS shipments_anon_address_key ON shipments (address) WHERE user_id IS NULL;`,
		`CREATE TABLE IF NOT EXISTS carts (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS additions (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
  cart_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity NUMERIC NOT NULL DEFAULT 0,
  order_now INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (cart_id, product_id)
);`,
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
		`DELETE FROM orders;`,
		`DELETE FROM order_details;`,
		`DELETE FROM purchases;`,
		`DELETE FROM shipments;`,
		`DELETE FROM carts;`,
		`DELETE FROM additions;`,
		`DELETE FROM products;`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newOrdersService(t *testing.T, db *gorm.DB, products *stubProducts) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Client:   &gormTxRunner{db: db},
		Repo:     NewRepository(db),
		Cart:     cart.NewRepository(db),
		Products: products,
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
	})
	require.NoError(t, err)
	return svc
}

func seedCartLine(t *testing.T, db *gorm.DB, cartID uuid.UUID, quantity string, orderNow bool) models.Addition {
	t.Helper()
	addition := models.Addition{
		CartID:    cartID,
		ProductID: uuid.New(),
		Quantity:  decimal.RequireFromString(quantity),
		OrderNow:  orderNow,
	}
	require.NoError(t, db.Create(&addition).Error)
	// gorm skips zero-value fields that carry a default tag, so a false
	// order_now never reaches the insert; set it explicitly.
	if !orderNow {
		require.NoError(t, db.Model(&models.Addition{}).
			Where("cart_id = ? AND product_id = ?", cartID, addition.ProductID).
			Update("order_now", false).Error)
	}
	return addition
}

func TestCreateOrderFromCartCopiesOrderNowLines(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db, &stubProducts{})

	cartID := uuid.New()
	wanted := seedCartLine(t, db, cartID, "4", true)
	alsoWanted := seedCartLine(t, db, cartID, "2.5", true)
	seedCartLine(t, db, cartID, "9", false)

	order, err := svc.CreateOrder(context.Background(), CreateInput{CartID: cartID, FromCart: true})
	require.NoError(t, err)

	var details []models.OrderDetail
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&details).Error)
	require.Len(t, details, 2)

	byProduct := map[uuid.UUID]models.OrderDetail{}
	for _, d := range details {
		require.NotNil(t, d.ProductID)
		byProduct[*d.ProductID] = d
	}
	assert.True(t, byProduct[wanted.ProductID].Quantity.Equal(wanted.Quantity))
	assert.True(t, byProduct[alsoWanted.ProductID].Quantity.Equal(alsoWanted.Quantity))

	// Checkout must not clear the cart.
	var remaining int64
	require.NoError(t, db.Model(&models.Addition{}).Where("cart_id = ?", cartID).Count(&remaining).Error)
	assert.EqualValues(t, 3, remaining)
}

func TestCreateOrderFromEmptyCart(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db, &stubProducts{})

	_, err := svc.CreateOrder(context.Background(), CreateInput{CartID: uuid.New(), FromCart: true})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateOrderDirect(t *testing.T) {
	db := setupOrdersTestDB(t)
	product := &models.Product{
		ID:               uuid.New(),
		Name:             "oak table",
		Price:            decimal.RequireFromString("250.00"),
		UnitMeasure:      "units",
		Quantity:         decimal.RequireFromString("10"),
		MinOrderQuantity: decimal.RequireFromString("1"),
	}
	svc := newOrdersService(t, db, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	qty := decimal.RequireFromString("2")
	order, err := svc.CreateOrder(context.Background(), CreateInput{
		CartID:    uuid.New(),
		ProductID: &product.ID,
		Quantity:  &qty,
	})
	require.NoError(t, err)

	var details []models.OrderDetail
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&details).Error)
	require.Len(t, details, 1)
	assert.True(t, details[0].Quantity.Equal(qty))
}

func TestCreateOrderDirectBelowMinimum(t *testing.T) {
	db := setupOrdersTestDB(t)
	product := &models.Product{
		ID:               uuid.New(),
		Name:             "fabric",
		Price:            decimal.RequireFromString("12.00"),
		UnitMeasure:      "meters",
		Quantity:         decimal.RequireFromString("100"),
		MinOrderQuantity: decimal.RequireFromString("5"),
	}
	svc := newOrdersService(t, db, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	qty := decimal.RequireFromString("3")
	_, err := svc.CreateOrder(context.Background(), CreateInput{
		CartID:    uuid.New(),
		ProductID: &product.ID,
		Quantity:  &qty,
	})
	require.Error(t, err)
	fields := pkgerrors.FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, pkgerrors.FieldCodeTooLow, fields[0].Code)
	assert.Equal(t, "5", fields[0].Params["min"])
	assert.Equal(t, "meters", fields[0].Params["unit_measure"])
}

func TestCreateOrderDirectWithoutProductIsInternal(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db, &stubProducts{})

	_, err := svc.CreateOrder(context.Background(), CreateInput{CartID: uuid.New()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInternal, typed.Code())
}

func TestAmountSplitsGoodsAndShipment(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db, &stubProducts{})

	product := models.Product{
		SKU:              "sku-1",
		Name:             "lamp",
		Price:            decimal.RequireFromString("40.00"),
		Quantity:         decimal.RequireFromString("10"),
		MinOrderQuantity: decimal.RequireFromString("1"),
	}
	require.NoError(t, db.Create(&product).Error)

	order := models.Order{ShipmentCost: decimal.RequireFromString("15.00")}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderDetail{
		OrderID:   order.ID,
		ProductID: &product.ID,
		Quantity:  decimal.RequireFromString("3"),
	}).Error)

	goods, shipment, err := svc.Amount(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, goods.Equal(decimal.RequireFromString("120")), "goods = %s", goods)
	assert.True(t, shipment.Equal(decimal.RequireFromString("15")))
}
