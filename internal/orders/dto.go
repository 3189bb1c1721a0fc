package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
)

// LineRequest asks for a quantity of one inventory item.
type LineRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"gt=0"`
}

// CreateOrderDTO carries everything needed to place an order with one
// supplier.
type CreateOrderDTO struct {
	SupplierID      uuid.UUID     `json:"supplier_id" validate:"required"`
	Items           []LineRequest `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string        `json:"delivery_address" validate:"required"`
	Notes           *string       `json:"notes,omitempty"`
	PaymentMethod   string        `json:"payment_method" validate:"required"`
}

// UpdateStatusDTO moves an order to a new lifecycle status.
type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

// ListFilters narrows an order listing. Nil fields mean no filter.
type ListFilters struct {
	Status *enums.OrderStatus
}

// LineDTO is one priced line as captured at order time.
type LineDTO struct {
	ItemID         uuid.UUID `json:"item_id"`
	Name           string    `json:"name"`
	Unit           string    `json:"unit"`
	Quantity       int       `json:"quantity"`
	UnitPricePaise int64     `json:"unit_price_paise"`
	TotalPaise     int64     `json:"total_paise"`
}

// OrderDTO is the API view of one order.
type OrderDTO struct {
	ID                 uuid.UUID                `json:"id"`
	VendorID           uuid.UUID                `json:"vendor_id"`
	SupplierID         uuid.UUID                `json:"supplier_id"`
	Status             enums.OrderStatus        `json:"status"`
	PaymentStatus      enums.OrderPaymentStatus `json:"payment_status"`
	PaymentMethod      enums.PaymentMethod      `json:"payment_method"`
	TotalPaise         int64                    `json:"total_paise"`
	DeliveryAddress    string                   `json:"delivery_address"`
	Notes              *string                  `json:"notes,omitempty"`
	TrackingNumber     *string                  `json:"tracking_number,omitempty"`
	ExpectedDeliveryAt *time.Time               `json:"expected_delivery_at,omitempty"`
	ConfirmedAt        *time.Time               `json:"confirmed_at,omitempty"`
	DeliveredAt        *time.Time               `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time               `json:"cancelled_at,omitempty"`
	Items              []LineDTO                `json:"items"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// OrderList is one page of orders plus the cursor for the next page.
type OrderList struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor *string    `json:"next_cursor,omitempty"`
}

// FromModel converts a persisted order into its DTO.
func FromModel(order models.Order) OrderDTO {
	lines := make([]LineDTO, 0, len(order.Materials))
	for _, material := range order.Materials {
		lines = append(lines, LineDTO{
			ItemID:         material.ItemID,
			Name:           material.Name,
			Unit:           material.Unit,
			Quantity:       material.Quantity,
			UnitPricePaise: material.UnitPricePaise,
			TotalPaise:     material.TotalPaise,
		})
	}
	return OrderDTO{
		ID:                 order.ID,
		VendorID:           order.VendorID,
		SupplierID:         order.SupplierID,
		Status:             order.Status,
		PaymentStatus:      order.PaymentStatus,
		PaymentMethod:      order.PaymentMethod,
		TotalPaise:         order.TotalPaise,
		DeliveryAddress:    order.DeliveryAddress,
		Notes:              order.Notes,
		TrackingNumber:     order.TrackingNumber,
		ExpectedDeliveryAt: order.ExpectedDeliveryAt,
		ConfirmedAt:        order.ConfirmedAt,
		DeliveredAt:        order.DeliveredAt,
		CancelledAt:        order.CancelledAt,
		Items:              lines,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}
