package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/enums"
)

// Order is a vendor's purchase of raw materials from a single supplier.
type Order struct {
	ID                 uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID           uuid.UUID                `gorm:"column:vendor_id;type:uuid;not null;index"`
	SupplierID         uuid.UUID                `gorm:"column:supplier_id;type:uuid;not null;index"`
	Status             enums.OrderStatus        `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus      enums.OrderPaymentStatus `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	PaymentMethod      enums.PaymentMethod      `gorm:"column:payment_method;type:text;not null;default:'upi'"`
	TotalPaise         int64                    `gorm:"column:total_paise;not null"`
	DeliveryAddress    string                   `gorm:"column:delivery_address;not null"`
	Notes              *string                  `gorm:"column:notes"`
	TrackingNumber     *string                  `gorm:"column:tracking_number"`
	ExpectedDeliveryAt *time.Time               `gorm:"column:expected_delivery_at"`
	ConfirmedAt        *time.Time               `gorm:"column:confirmed_at"`
	DeliveredAt        *time.Time               `gorm:"column:delivered_at"`
	CancelledAt        *time.Time               `gorm:"column:cancelled_at"`
	Materials          []OrderMaterial          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PaymentIntent      *PaymentIntent           `gorm:"foreignKey:OrderID"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
