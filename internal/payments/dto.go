package payments

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
)

// InitiatePaymentDTO starts a payment for one order.
type InitiatePaymentDTO struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

// IntentDTO is the API view of one payment intent.
type IntentDTO struct {
	ID             uuid.UUID                 `json:"id"`
	OrderID        uuid.UUID                 `json:"order_id"`
	Method         enums.PaymentMethod       `json:"method"`
	Status         enums.PaymentIntentStatus `json:"status"`
	AmountPaise    int64                     `json:"amount_paise"`
	PaymentRef     string                    `json:"payment_ref"`
	UPILink        string                    `json:"upi_link,omitempty"`
	TransactionRef *string                   `json:"transaction_ref,omitempty"`
	FailureReason  *string                   `json:"failure_reason,omitempty"`
	ConfirmedAt    *time.Time                `json:"confirmed_at,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// FromModel converts a persisted intent into its DTO.
func FromModel(intent models.PaymentIntent) IntentDTO {
	return IntentDTO{
		ID:             intent.ID,
		OrderID:        intent.OrderID,
		Method:         intent.Method,
		Status:         intent.Status,
		AmountPaise:    intent.AmountPaise,
		PaymentRef:     intent.PaymentRef,
		UPILink:        intent.UPILink,
		TransactionRef: intent.TransactionRef,
		FailureReason:  intent.FailureReason,
		ConfirmedAt:    intent.ConfirmedAt,
		CreatedAt:      intent.CreatedAt,
	}
}
