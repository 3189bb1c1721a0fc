package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/enums"
)

// PaymentIntent tracks payment progress for an order through the
// initiated -> awaiting_confirmation -> succeeded|failed machine.
type PaymentIntent struct {
	ID             uuid.UUID                 `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID                 `gorm:"column:order_id;type:uuid;not null;index"`
	Method         enums.PaymentMethod       `gorm:"column:method;type:text;not null;default:'upi'"`
	Status         enums.PaymentIntentStatus `gorm:"column:status;type:text;not null;default:'initiated'"`
	AmountPaise    int64                     `gorm:"column:amount_paise;not null"`
	PaymentRef     string                    `gorm:"column:payment_ref;not null;uniqueIndex"`
	UPILink        string                    `gorm:"column:upi_link;not null;default:''"`
	TransactionRef *string                   `gorm:"column:transaction_ref"`
	FailureReason  *string                   `gorm:"column:failure_reason"`
	ConfirmedAt    *time.Time                `gorm:"column:confirmed_at"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
