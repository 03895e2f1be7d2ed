package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

// ProductInput is the admin form for creating or updating a product.
type ProductInput struct {
	SKU              string
	Name             string
	Description      string
	Price            decimal.Decimal
	UnitMeasure      string
	Quantity         decimal.Decimal
	MinOrderQuantity decimal.Decimal
	InProduction     bool
	CategoryIDs      []uuid.UUID
}

// CategoryInput is the admin form for a category facet value.
type CategoryInput struct {
	Name     string
	Value    string
	ParentID *uuid.UUID
}

// AdminService manages the catalog itself rather than serving shoppers.
type AdminService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	RetireProduct(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type AdminServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

type adminService struct {
	repo *Repository
	logg *logger.Logger
}

func NewAdminService(params AdminServiceParams) (AdminService, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("catalog admin: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("catalog admin: logger is required")
	}
	return &adminService{repo: params.Repo, logg: params.Logger}, nil
}

func (s *adminService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product := &models.Product{
		SKU:              input.SKU,
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		UnitMeasure:      input.UnitMeasure,
		Quantity:         input.Quantity,
		MinOrderQuantity: input.MinOrderQuantity,
		InProduction:     input.InProduction,
	}
	if product.UnitMeasure == "" {
		product.UnitMeasure = "units"
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, product, input.CategoryIDs); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SKU = input.SKU
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.UnitMeasure = input.UnitMeasure
	product.Quantity = input.Quantity
	product.MinOrderQuantity = input.MinOrderQuantity
	product.InProduction = input.InProduction
	if err := s.repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	if err := s.attachCategories(ctx, product, input.CategoryIDs); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *adminService) attachCategories(ctx context.Context, product *models.Product, ids []uuid.UUID) error {
	if ids == nil {
		return nil
	}
	categories, err := s.repo.LoadCategories(ctx, ids)
	if err != nil {
		return err
	}
	return s.repo.AttachProductCategories(ctx, product, categories)
}

func (s *adminService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *adminService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListProducts(ctx)
}

// RetireProduct pulls a product from production instead of deleting it, so
// order history keeps its reference.
func (s *adminService) RetireProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	product.InProduction = false
	return s.repo.SaveProduct(ctx, product)
}

func (s *adminService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:     input.Name,
		Value:    input.Value,
		ParentID: input.ParentID,
	}
	if input.ParentID != nil {
		if _, err := s.repo.GetCategory(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		if err := s.checkNoCycle(ctx, id, *input.ParentID); err != nil {
			return nil, err
		}
	}

	category.Name = input.Name
	category.Value = input.Value
	category.ParentID = input.ParentID
	if err := s.repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// checkNoCycle walks the would-be parent chain and rejects a reparenting
// that would make the category its own ancestor.
func (s *adminService) checkNoCycle(ctx context.Context, id, parentID uuid.UUID) error {
	current := parentID
	for {
		if current == id {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "category cannot be its own ancestor")
		}
		parent, err := s.repo.GetCategory(ctx, current)
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

func (s *adminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *adminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCategory(ctx, id)
}
