// Package catalog lists, filters and sorts the storefront's products.
package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kamalsite/backend/pkg/db/models"
	"github.com/kamalsite/backend/pkg/logger"
	"github.com/kamalsite/backend/pkg/pagination"
)

// Service serves catalog pages and product details.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListPage, error)
	Detail(ctx context.Context, input DetailInput) (*ProductView, error)
	PriceBounds(ctx context.Context) (*PriceRange, error)
}

// ListInput carries everything the controller resolved from the request and
// the shopper's session.
type ListInput struct {
	Filters Filters
	Sort    Sort
	Page    int

	// UserID is set for authenticated shoppers; AnonLikes is the session
	// shadow map used when it is not.
	UserID    *uuid.UUID
	CartID    *uuid.UUID
	AnonLikes map[uuid.UUID]bool
}

type DetailInput struct {
	ProductID uuid.UUID
	UserID    *uuid.UUID
	CartID    *uuid.UUID
	AnonLikes map[uuid.UUID]bool
}

type ServiceParams struct {
	Repo     *Repository
	Logger   *logger.Logger
	PageSize int
}

type service struct {
	repo     *Repository
	logg     *logger.Logger
	pageSize int
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("catalog: logger is required")
	}
	if params.PageSize < 1 {
		params.PageSize = pagination.DefaultPageSize
	}
	return &service{repo: params.Repo, logg: params.Logger, pageSize: params.PageSize}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListPage, error) {
	params := pagination.Params{Page: input.Page, Size: s.pageSize}.Normalize()

	rows, total, err := s.repo.List(ctx, input.Filters, input.Sort, params)
	if err != nil {
		return nil, err
	}

	liked, inCart, err := s.affordances(ctx, input.UserID, input.CartID, input.AnonLikes, productIDs(rows))
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newProductView(row, liked[row.ID], inCart[row.ID]))
	}

	return &ListPage{Products: views, Meta: pagination.NewMeta(params, total)}, nil
}

func (s *service) Detail(ctx context.Context, input DetailInput) (*ProductView, error) {
	product, err := s.repo.GetInProduction(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	liked, inCart, err := s.affordances(ctx, input.UserID, input.CartID, input.AnonLikes, []uuid.UUID{product.ID})
	if err != nil {
		return nil, err
	}

	view := newProductView(*product, liked[product.ID], inCart[product.ID])
	return &view, nil
}

func (s *service) PriceBounds(ctx context.Context) (*PriceRange, error) {
	min, max, err := s.repo.PriceBounds(ctx)
	if err != nil {
		return nil, err
	}
	return &PriceRange{Min: min, Max: max}, nil
}

// affordances resolves the liked / in-cart flags for a set of products from
// the database for authenticated shoppers, or from the session shadow map
// for anonymous ones.
func (s *service) affordances(
	ctx context.Context,
	userID *uuid.UUID,
	cartID *uuid.UUID,
	anonLikes map[uuid.UUID]bool,
	ids []uuid.UUID,
) (liked, inCart map[uuid.UUID]bool, err error) {
	if userID != nil {
		liked, err = s.repo.LikedProductIDs(ctx, *userID, ids)
		if err != nil {
			return nil, nil, err
		}
	} else {
		liked = anonLikes
	}

	inCart = map[uuid.UUID]bool{}
	if cartID != nil {
		inCart, err = s.repo.InCartProductIDs(ctx, *cartID, ids)
		if err != nil {
			return nil, nil, err
		}
	}
	return liked, inCart, nil
}

func productIDs(rows []models.Product) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}
