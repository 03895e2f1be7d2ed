// Package cart manages each shopper's cart and its line items.
package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamalsite/backend/internal/sessions"
	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

// productLoader is the slice of the catalog the cart needs: current stock
// and minimum order quantities.
type productLoader interface {
	GetInProduction(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service manages cart contents for authenticated and anonymous shoppers.
type Service interface {
	GetOrCreateCart(ctx context.Context, userID *uuid.UUID, state *sessions.State) (*models.Cart, error)
	AddToCart(ctx context.Context, cartID, productID uuid.UUID) (*models.Addition, error)
	SetQuantity(ctx context.Context, cartID, additionID uuid.UUID, quantity decimal.Decimal) (*models.Addition, error)
	DeleteFromCart(ctx context.Context, cartID, additionID uuid.UUID) error
	ListCart(ctx context.Context, cartID uuid.UUID) (*View, error)
}

type ServiceParams struct {
	Repo     *Repository
	Products productLoader
	Logger   *logger.Logger
}

type service struct {
	repo     *Repository
	products productLoader
	logg     *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart: repo is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("cart: product loader is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("cart: logger is required")
	}
	return &service{repo: params.Repo, products: params.Products, logg: params.Logger}, nil
}

// GetOrCreateCart resolves the shopper's cart. Authenticated shoppers get
// one cart per user id; anonymous shoppers get a detached cart whose id is
// written back into their session state.
func (s *service) GetOrCreateCart(ctx context.Context, userID *uuid.UUID, state *sessions.State) (*models.Cart, error) {
	if userID != nil {
		return s.repo.GetOrCreateByUser(ctx, *userID)
	}

	if state != nil && state.CartID != nil {
		cart, err := s.repo.GetByID(ctx, *state.CartID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
		// Stale session pointing at a purged cart; fall through and mint a
		// fresh one.
	}

	cart, err := s.repo.Create(ctx, nil)
	if err != nil {
		return nil, err
	}
	if state != nil {
		state.CartID = &cart.ID
	}
	return cart, nil
}

// AddToCart places a product in the cart at its minimum order quantity.
// Adding a product already present leaves the existing line untouched.
func (s *service) AddToCart(ctx context.Context, cartID, productID uuid.UUID) (*models.Addition, error) {
	product, err := s.products.GetInProduction(ctx, productID)
	if err != nil {
		return nil, err
	}

	addition, created, err := s.repo.GetOrCreateAddition(ctx, cartID, productID, product.MinOrderQuantity)
	if err != nil {
		return nil, err
	}

	if !created && addition.Quantity.Sign() <= 0 {
		// A soft-deleted line comes back at the default quantity.
		addition.Quantity = product.MinOrderQuantity
		addition.OrderNow = true
		if err := s.repo.SaveAddition(ctx, addition); err != nil {
			return nil, err
		}
	}
	return addition, nil
}

// SetQuantity replaces a line's quantity after checking it against the
// product's minimum order quantity and available stock.
func (s *service) SetQuantity(ctx context.Context, cartID, additionID uuid.UUID, quantity decimal.Decimal) (*models.Addition, error) {
	addition, err := s.repo.GetAddition(ctx, cartID, additionID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetInProduction(ctx, addition.ProductID)
	if err != nil {
		return nil, err
	}

	if err := validateQuantity(quantity, product); err != nil {
		return nil, err
	}

	addition.Quantity = quantity
	addition.OrderNow = true
	if err := s.repo.SaveAddition(ctx, addition); err != nil {
		return nil, err
	}
	return addition, nil
}

func validateQuantity(quantity decimal.Decimal, product *models.Product) error {
	if quantity.Sign() <= 0 {
		return pkgerrors.NewFieldError("quantity", pkgerrors.FieldCodeNonPositive,
			"quantity must be positive", nil)
	}
	if quantity.LessThan(product.MinOrderQuantity) {
		return pkgerrors.NewFieldError("quantity", pkgerrors.FieldCodeTooLow,
			"quantity is below the minimum order quantity", map[string]any{
				"min":          product.MinOrderQuantity.String(),
				"unit_measure": product.UnitMeasure,
			})
	}
	if quantity.GreaterThan(product.Quantity) {
		return pkgerrors.NewFieldError("quantity", pkgerrors.FieldCodeExceedsStock,
			"quantity exceeds available stock", map[string]any{
				"available":    product.Quantity.String(),
				"unit_measure": product.UnitMeasure,
			})
	}
	return nil
}

// DeleteFromCart empties a line instead of dropping the row, so re-adding
// the product later revives it. The model hook clears order_now.
func (s *service) DeleteFromCart(ctx context.Context, cartID, additionID uuid.UUID) error {
	addition, err := s.repo.GetAddition(ctx, cartID, additionID)
	if err != nil {
		return err
	}
	addition.Quantity = decimal.Zero
	return s.repo.SaveAddition(ctx, addition)
}

// ListCart returns the renderable cart contents with line and goods totals.
func (s *service) ListCart(ctx context.Context, cartID uuid.UUID) (*View, error) {
	rows, err := s.repo.ListAdditions(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return newView(cartID, rows), nil
}
