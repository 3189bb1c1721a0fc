package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is one raw material listed by a supplier.
type InventoryItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierID  uuid.UUID `gorm:"column:supplier_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	Category    string    `gorm:"column:category;not null"`
	Unit        string    `gorm:"column:unit;not null"`
	PricePaise  int64     `gorm:"column:price_paise;not null"`
	Stock       int       `gorm:"column:stock;not null;default:0"`
	MinStock    int       `gorm:"column:min_stock;not null;default:0"`
	Quality     *string   `gorm:"column:quality"`
	Description *string   `gorm:"column:description"`
	IsAvailable bool      `gorm:"column:is_available;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// LowStock reports whether the remaining stock sits at or below the reorder
// threshold.
func (i InventoryItem) LowStock() bool {
	return i.Stock <= i.MinStock
}
