// Package orders assembles draft orders and walks them to purchase.
package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

// txRunner runs a function inside one database transaction.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// orderNowLister is the slice of the cart the assembler consumes.
type orderNowLister interface {
	ListOrderNow(ctx context.Context, cartID uuid.UUID) ([]models.Addition, error)
}

type productLoader interface {
	GetInProduction(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service assembles orders from the cart or a single product.
type Service interface {
	CreateOrder(ctx context.Context, input CreateInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Amount(ctx context.Context, orderID uuid.UUID) (goods, shipment decimal.Decimal, err error)
}

// CreateInput is a checkout command. FromCart copies the cart's order-now
// lines; otherwise ProductID names a single product to order directly.
type CreateInput struct {
	UserID    *uuid.UUID
	CartID    uuid.UUID
	FromCart  bool
	ProductID *uuid.UUID
	Quantity  *decimal.Decimal
}

type ServiceParams struct {
	Client   txRunner
	Repo     *Repository
	Cart     orderNowLister
	Products productLoader
	Logger   *logger.Logger
}

type service struct {
	client   txRunner
	repo     *Repository
	cart     orderNowLister
	products productLoader
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("orders: tx runner is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("orders: repo is required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("orders: cart lister is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("orders: product loader is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("orders: logger is required")
	}
	return &service{
		client:   params.Client,
		repo:     params.Repo,
		cart:     params.Cart,
		products: params.Products,
		logg:     params.Logger,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.FromCart {
		return s.createFromCart(ctx, input)
	}
	return s.createDirect(ctx, input)
}

// createFromCart copies every order-now cart line into the new order's
// details inside one transaction. The cart lines stay in place for repeat
// ordering.
func (s *service) createFromCart(ctx context.Context, input CreateInput) (*models.Order, error) {
	additions, err := s.cart.ListOrderNow(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if len(additions) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart has no items marked for order")
	}

	order := &models.Order{UserID: input.UserID}
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		details := make([]models.OrderDetail, 0, len(additions))
		for _, addition := range additions {
			productID := addition.ProductID
			details = append(details, models.OrderDetail{
				OrderID:   order.ID,
				ProductID: &productID,
				Quantity:  addition.Quantity,
			})
		}
		return repo.CreateDetails(ctx, details)
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "order assembled from cart")
	return order, nil
}

// createDirect orders a single product without touching the cart.
func (s *service) createDirect(ctx context.Context, input CreateInput) (*models.Order, error) {
	if input.ProductID == nil {
		// Controllers always resolve a product before calling; reaching
		// this branch is a wiring bug, not bad user input.
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "direct order without product id")
	}

	product, err := s.products.GetInProduction(ctx, *input.ProductID)
	if err != nil {
		return nil, err
	}

	quantity := product.MinOrderQuantity
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity.LessThan(product.MinOrderQuantity) {
		return nil, pkgerrors.NewFieldError("quantity", pkgerrors.FieldCodeTooLow,
			"quantity is below the minimum order quantity", map[string]any{
				"min":          product.MinOrderQuantity.String(),
				"unit_measure": product.UnitMeasure,
			})
	}

	order := &models.Order{UserID: input.UserID}
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}
		return repo.CreateDetails(ctx, []models.OrderDetail{{
			OrderID:   order.ID,
			ProductID: input.ProductID,
			Quantity:  quantity,
		}})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// Amount totals the order. Goods and shipment cost stay separate so the
// renderer can show the split.
func (s *service) Amount(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	details, err := s.repo.ListDetails(ctx, orderID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	goods := decimal.Zero
	for _, detail := range details {
		if detail.Product == nil {
			continue
		}
		goods = goods.Add(detail.Product.Price.Mul(detail.Quantity))
	}
	return goods, order.ShipmentCost, nil
}
