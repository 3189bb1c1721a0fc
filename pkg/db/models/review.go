package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a vendor's one-time rating of a delivered order. Rows are
// immutable once written; the supplier's rating accumulator moves in the same
// transaction as the insert.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_reviews_order"`
	VendorID   uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;index"`
	SupplierID uuid.UUID `gorm:"column:supplier_id;type:uuid;not null;index"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    *string   `gorm:"column:comment"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
