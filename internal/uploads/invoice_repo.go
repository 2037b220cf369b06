package uploads

import (
	"context"

	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
)

// InvoiceRepository exposes invoice persistence.
type InvoiceRepository interface {
	WithTx(tx *gorm.DB) InvoiceRepository
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	FindInvoicesByBatch(ctx context.Context, batchID string) ([]models.Invoice, error)
	FindInvoicesByOrder(ctx context.Context, orderID string) ([]models.Invoice, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository builds an invoice repository bound to the provided DB.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) WithTx(tx *gorm.DB) InvoiceRepository {
	if tx == nil {
		return r
	}
	return &invoiceRepository{db: tx}
}

func (r *invoiceRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) FindInvoicesByBatch(ctx context.Context, batchID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Where("upload_batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) FindInvoicesByOrder(ctx context.Context, orderID string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
