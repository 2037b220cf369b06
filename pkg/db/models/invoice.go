package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is a billing row ingested from an ERP invoice export. Fields mirror
// the export columns; monetary values default to zero when the cell is blank
// or unparseable.
type Invoice struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber   string          `gorm:"column:invoice_number;not null;index" json:"invoice_number"`
	Narration       string          `gorm:"column:narration;not null" json:"narration"`
	OrderID         *uuid.UUID      `gorm:"column:order_id;type:uuid;index" json:"order_id,omitempty"`
	OriginalOrderID string          `gorm:"column:original_order_id;index" json:"original_order_id"`
	InvoiceDate     *time.Time      `gorm:"column:invoice_date" json:"invoice_date,omitempty"`
	DueDate         *time.Time      `gorm:"column:due_date" json:"due_date,omitempty"`
	AccountName     string          `gorm:"column:account_name" json:"account_name"`
	VoucherType     string          `gorm:"column:voucher_type" json:"voucher_type"`
	Reference       string          `gorm:"column:reference" json:"reference"`
	ItemName        string          `gorm:"column:item_name" json:"item_name"`
	ItemCode        string          `gorm:"column:item_code" json:"item_code"`
	HSNCode         string          `gorm:"column:hsn_code" json:"hsn_code"`
	BatchNumber     string          `gorm:"column:batch_number" json:"batch_number"`
	Godown          string          `gorm:"column:godown" json:"godown"`
	Unit            string          `gorm:"column:unit" json:"unit"`
	Quantity        int             `gorm:"column:quantity;default:0" json:"quantity"`
	BilledQuantity  int             `gorm:"column:billed_quantity;default:0" json:"billed_quantity"`
	Rate            decimal.Decimal `gorm:"column:rate;type:numeric(14,2);default:0" json:"rate"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(7,2);default:0" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `gorm:"column:discount_amount;type:numeric(14,2);default:0" json:"discount_amount"`
	TaxableValue    decimal.Decimal `gorm:"column:taxable_value;type:numeric(14,2);default:0" json:"taxable_value"`
	CGSTRate        decimal.Decimal `gorm:"column:cgst_rate;type:numeric(7,2);default:0" json:"cgst_rate"`
	CGSTAmount      decimal.Decimal `gorm:"column:cgst_amount;type:numeric(14,2);default:0" json:"cgst_amount"`
	SGSTRate        decimal.Decimal `gorm:"column:sgst_rate;type:numeric(7,2);default:0" json:"sgst_rate"`
	SGSTAmount      decimal.Decimal `gorm:"column:sgst_amount;type:numeric(14,2);default:0" json:"sgst_amount"`
	IGSTRate        decimal.Decimal `gorm:"column:igst_rate;type:numeric(7,2);default:0" json:"igst_rate"`
	IGSTAmount      decimal.Decimal `gorm:"column:igst_amount;type:numeric(14,2);default:0" json:"igst_amount"`
	RoundOff        decimal.Decimal `gorm:"column:round_off;type:numeric(10,2);default:0" json:"round_off"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);default:0" json:"total_amount"`
	UploadBatchID   string          `gorm:"column:upload_batch_id;index" json:"upload_batch_id"`
	UploadedBy      uuid.UUID       `gorm:"column:uploaded_by;type:uuid" json:"uploaded_by"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName overrides the default naming.
func (Invoice) TableName() string {
	return "invoices"
}
