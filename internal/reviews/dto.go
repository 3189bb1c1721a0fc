package reviews

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
)

// CreateReviewDTO rates one delivered order.
type CreateReviewDTO struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Rating  int       `json:"rating" validate:"required,min=1,max=5"`
	Comment *string   `json:"comment,omitempty"`
}

// ReviewDTO is the API view of one review.
type ReviewDTO struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	VendorID   uuid.UUID `json:"vendor_id"`
	SupplierID uuid.UUID `json:"supplier_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewList is one page of reviews plus the cursor for the next page.
type ReviewList struct {
	Reviews    []ReviewDTO `json:"reviews"`
	NextCursor *string     `json:"next_cursor,omitempty"`
}

// FromModel converts a persisted review into its DTO.
func FromModel(review models.Review) ReviewDTO {
	return ReviewDTO{
		ID:         review.ID,
		OrderID:    review.OrderID,
		VendorID:   review.VendorID,
		SupplierID: review.SupplierID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}
