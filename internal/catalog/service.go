package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
)

// Service defines catalog operations used by ingestion and the API layer.
type Service interface {
	GetOrCreateDealer(ctx context.Context, tx *gorm.DB, name string) (*models.Dealer, error)
	GetOrCreateProduct(ctx context.Context, tx *gorm.DB, input ProductInput) (*models.Product, error)

	GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListWarehouses(ctx context.Context) ([]models.Warehouse, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

// ProductInput carries the catalog fields an upload row can contribute.
type ProductInput struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetOrCreateDealer(ctx context.Context, tx *gorm.DB, name string) (*models.Dealer, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "dealer name is required")
	}

	dealer := &models.Dealer{
		ID:             uuid.New(),
		Name:           trimmed,
		NameNormalized: Normalize(trimmed),
	}
	out, err := s.repo.WithTx(tx).UpsertDealer(ctx, dealer)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "upserting dealer")
	}
	return out, nil
}

func (s *service) GetOrCreateProduct(ctx context.Context, tx *gorm.DB, input ProductInput) (*models.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "product sku is required")
	}

	product := &models.Product{
		ID:            uuid.New(),
		SKU:           sku,
		SKUNormalized: Normalize(sku),
		Name:          strings.TrimSpace(input.Name),
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
	}
	out, err := s.repo.WithTx(tx).UpsertProduct(ctx, product)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "upserting product")
	}
	return out, nil
}

func (s *service) GetWarehouse(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.repo.FindWarehouseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "warehouse not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "finding warehouse")
	}
	return warehouse, nil
}

func (s *service) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.repo.FindCompanyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "company not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "finding company")
	}
	return company, nil
}

func (s *service) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	warehouses, err := s.repo.ListWarehouses(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing warehouses")
	}
	return warehouses, nil
}

func (s *service) ListCompanies(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing companies")
	}
	return companies, nil
}
