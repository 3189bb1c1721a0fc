package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
)

// ErrIntentStateChanged reports a guarded intent update that lost the race:
// the row no longer held the expected status when the UPDATE ran.
var ErrIntentStateChanged = errors.New("payment intent state changed concurrently")

// Repository exposes payment intent persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a payments repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new payment intent.
func (r *Repository) Create(ctx context.Context, intent *models.PaymentIntent) error {
	return r.db.WithContext(ctx).Create(intent).Error
}

// FindByID loads one intent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	if err := r.db.WithContext(ctx).First(&intent, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &intent, nil
}

// FindActiveByOrderID loads the newest non-terminal intent on an order, if
// any.
func (r *Repository) FindActiveByOrderID(ctx context.Context, orderID uuid.UUID) (*models.PaymentIntent, error) {
	var intent models.PaymentIntent
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status NOT IN ?", orderID, []enums.PaymentIntentStatus{
			enums.PaymentIntentStatusSucceeded,
			enums.PaymentIntentStatusFailed,
		}).
		Order("created_at DESC").
		First(&intent).Error
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// UpdateStatus moves an intent from one status to another. The expected
// status sits in the WHERE clause so a concurrent transition makes the
// UPDATE touch zero rows, in which case ErrIntentStateChanged comes back.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.PaymentIntentStatus, extra map[string]any) error {
	updates := map[string]any{"status": to}
	for column, value := range extra {
		updates[column] = value
	}

	res := r.db.WithContext(ctx).
		Model(&models.PaymentIntent{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrIntentStateChanged
	}
	return nil
}
