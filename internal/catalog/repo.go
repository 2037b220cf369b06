package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
)

// Repository exposes catalog persistence. Get-or-create relies on the unique
// indexes over normalized names, so concurrent uploads racing on the same
// dealer or SKU converge on a single row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	UpsertDealer(ctx context.Context, dealer *models.Dealer) (*models.Dealer, error)
	UpsertProduct(ctx context.Context, product *models.Product) (*models.Product, error)

	FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	FindCompanyByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListWarehouses(ctx context.Context) ([]models.Warehouse, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) UpsertDealer(ctx context.Context, dealer *models.Dealer) (*models.Dealer, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_normalized"}},
			DoNothing: true,
		}).
		Create(dealer).Error
	if err != nil {
		return nil, err
	}

	// a conflict leaves the struct without the winning row's id, so re-read
	var out models.Dealer
	err = r.db.WithContext(ctx).
		Where("name_normalized = ?", dealer.NameNormalized).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) UpsertProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sku_normalized"}},
			DoNothing: true,
		}).
		Create(product).Error
	if err != nil {
		return nil, err
	}

	var out models.Product
	err = r.db.WithContext(ctx).
		Where("sku_normalized = ?", product.SKUNormalized).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *repository) FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *repository) FindCompanyByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) ListWarehouses(ctx context.Context) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	err := r.db.WithContext(ctx).Order("name ASC").Find(&warehouses).Error
	if err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (r *repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}
