package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderMaterial is one priced line on an order. Name, unit, and unit price
// are captured at order time so later inventory edits never rewrite history.
type OrderMaterial struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ItemID         uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;not null"`
	Unit           string    `gorm:"column:unit;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPricePaise int64     `gorm:"column:unit_price_paise;not null"`
	TotalPaise     int64     `gorm:"column:total_paise;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
