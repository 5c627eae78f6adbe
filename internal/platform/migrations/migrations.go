package migrations

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for every bounded context through gorm AutoMigrate.
// Adapters never migrate on their own; cmd/migrate and the API call this (or
// RunSQL) once at start-up.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&partRecord{},
		&customerRecord{},
		&saleRecord{},
		&checkoutSessionRecord{},
		&receiptSequenceRecord{},
	)
}

// Part schema mirrors the catalog adapter. Stock may never go negative.
type partRecord struct {
	ID        int64           `gorm:"primaryKey;column:id"`
	Name      string          `gorm:"column:name;size:120;not null;uniqueIndex:idx_parts_name_model"`
	Model     string          `gorm:"column:model;size:120;not null;default:'';uniqueIndex:idx_parts_name_model"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Cost      decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null;default:0"`
	StockQty  int             `gorm:"column:stock_qty;not null;default:0;check:chk_parts_stock_qty,stock_qty >= 0"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (partRecord) TableName() string { return "parts" }

// Customer schema mirrors the customers adapter.
type customerRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	FullName  string    `gorm:"column:full_name;size:160;not null;uniqueIndex"`
	Phone     string    `gorm:"column:phone;size:40"`
	Email     string    `gorm:"column:email;size:160"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Sale ledger schema mirrors the sales adapter. Ledger rows pin both the
// customer and the part; neither can be deleted while referenced.
type saleRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	CommitID      string          `gorm:"column:commit_id;size:64;index"`
	ReceiptNumber string          `gorm:"column:receipt_number;size:32;not null;index"`
	CustomerID    int64           `gorm:"column:customer_id;not null;index"`
	PartID        int64           `gorm:"column:part_id;not null;index"`
	Quantity      int             `gorm:"column:quantity;not null;check:chk_sale_ledger_quantity,quantity > 0"`
	UnitPrice     decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	UnitCost      decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"column:total;type:numeric(14,2);not null"`
	SoldAt        time.Time       `gorm:"column:sold_at;not null;index"`

	Customer customerRecord `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Part     partRecord     `gorm:"foreignKey:PartID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (saleRecord) TableName() string { return "sale_ledger" }

// Checkout session schema mirrors the sales session store.
type checkoutSessionRecord struct {
	ID                string     `gorm:"primaryKey;column:id;size:36"`
	CustomerID        int64      `gorm:"column:customer_id;index"`
	Cart              string     `gorm:"column:cart;type:text"`
	LastReceiptNumber string     `gorm:"column:last_receipt_number;size:32"`
	LastReceipt       string     `gorm:"column:last_receipt;type:text"`
	ExpiresAt         *time.Time `gorm:"column:expires_at;index"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (checkoutSessionRecord) TableName() string { return "checkout_sessions" }

// Receipt sequence schema backs durable receipt numbering, one row per day.
type receiptSequenceRecord struct {
	Day       string `gorm:"primaryKey;column:day;size:8"`
	LastValue int    `gorm:"column:last_value;not null"`
}

func (receiptSequenceRecord) TableName() string { return "receipt_sequences" }
