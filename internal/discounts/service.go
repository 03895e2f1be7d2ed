// Package discounts manages time-boxed percentage discounts.
package discounts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

// Policy bounds for the discount percentage.
const (
	MinPercent = 0
	MaxPercent = 70

	// DefaultDuration applies when a discount has no explicit end date.
	DefaultDuration = 14 * 24 * time.Hour
)

// CreateInput describes a new or updated discount. A nil End defaults to
// two weeks after Start. Empty Groups means every shopper qualifies.
type CreateInput struct {
	Reason      string
	Percent     int
	Seasonal    bool
	Start       time.Time
	End         *time.Time
	Groups      []string
	CategoryIDs []uuid.UUID
}

// Service is the admin surface for discounts.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Discount, error)
	Update(ctx context.Context, id uuid.UUID, input CreateInput) (*models.Discount, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Discount, error)
	List(ctx context.Context) ([]models.Discount, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("discounts: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("discounts: logger is required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Discount, error) {
	if err := validatePercent(input.Percent); err != nil {
		return nil, err
	}

	discount := &models.Discount{
		Reason:   input.Reason,
		Percent:  input.Percent,
		Seasonal: input.Seasonal,
		Start:    input.Start,
		End:      resolveEnd(input),
		Groups:   pq.StringArray(input.Groups),
	}
	if err := s.repo.Create(ctx, discount); err != nil {
		return nil, err
	}

	if err := s.attach(ctx, discount, input.CategoryIDs); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input CreateInput) (*models.Discount, error) {
	if err := validatePercent(input.Percent); err != nil {
		return nil, err
	}

	discount, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	discount.Reason = input.Reason
	discount.Percent = input.Percent
	discount.Seasonal = input.Seasonal
	discount.Start = input.Start
	discount.End = resolveEnd(input)
	discount.Groups = pq.StringArray(input.Groups)
	if err := s.repo.Save(ctx, discount); err != nil {
		return nil, err
	}

	if err := s.attach(ctx, discount, input.CategoryIDs); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *service) attach(ctx context.Context, discount *models.Discount, categoryIDs []uuid.UUID) error {
	if categoryIDs == nil {
		return nil
	}
	categories, err := s.repo.LoadCategories(ctx, categoryIDs)
	if err != nil {
		return err
	}
	return s.repo.AttachCategories(ctx, discount, categories)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Discount, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) List(ctx context.Context) ([]models.Discount, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validatePercent(percent int) error {
	if percent < MinPercent || percent > MaxPercent {
		return pkgerrors.NewFieldError("percent", pkgerrors.FieldCodePercentOutOfRange,
			"discount percent is outside the allowed band", map[string]any{
				"min": MinPercent,
				"max": MaxPercent,
			})
	}
	return nil
}

func resolveEnd(input CreateInput) time.Time {
	if input.End != nil {
		return *input.End
	}
	return input.Start.Add(DefaultDuration)
}
