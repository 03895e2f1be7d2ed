// Package likes toggles per-shopper product likes.
package likes

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kamalsite/backend/internal/sessions"
	"github.com/kamalsite/backend/pkg/db/models"
	"github.com/kamalsite/backend/pkg/logger"
)

type productLoader interface {
	GetInProduction(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service flips likes for authenticated shoppers and session shadows for
// anonymous ones.
type Service interface {
	Toggle(ctx context.Context, userID, productID uuid.UUID) (*models.Like, error)
	ToggleAnonymous(ctx context.Context, state *sessions.State, productID uuid.UUID) (bool, error)
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
		return nil, fmt.Errorf("likes: repo is required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("likes: product loader is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("likes: logger is required")
	}
	return &service{repo: params.Repo, products: params.Products, logg: params.Logger}, nil
}

// Toggle get-or-creates the row and flips it in place, then returns the
// fresh state.
func (s *service) Toggle(ctx context.Context, userID, productID uuid.UUID) (*models.Like, error) {
	if _, err := s.products.GetInProduction(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.repo.Ensure(ctx, userID, productID); err != nil {
		return nil, err
	}
	if err := s.repo.Toggle(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, productID)
}

// ToggleAnonymous flips the session shadow. Nothing is written to the
// database; the shadow only shapes what the anonymous shopper sees.
func (s *service) ToggleAnonymous(ctx context.Context, state *sessions.State, productID uuid.UUID) (bool, error) {
	if _, err := s.products.GetInProduction(ctx, productID); err != nil {
		return false, err
	}
	return state.ToggleLike(productID), nil
}
