package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

// ErrStatusChanged reports a guarded status update that lost the race: the
// row no longer held the expected status when the UPDATE ran.
var ErrStatusChanged = errors.New("order status changed concurrently")

// Repository exposes order persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
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

// Create inserts the order together with its material lines.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID loads one order with its lines and payment intent.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Materials").
		Preload("PaymentIntent").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByVendor returns one page of a vendor's orders, newest first.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Order, error) {
	return r.list(ctx, "vendor_id = ?", vendorID, filters, params)
}

// ListBySupplier returns one page of orders placed with a supplier, newest
// first.
func (r *Repository) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Order, error) {
	return r.list(ctx, "supplier_id = ?", supplierID, filters, params)
}

func (r *Repository) list(ctx context.Context, cond string, party uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Materials").
		Where(cond, party)

	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var orders []models.Order
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus moves an order from one status to another. The expected
// status sits in the WHERE clause so a concurrent transition makes the
// UPDATE touch zero rows, in which case ErrStatusChanged comes back and the
// caller's transaction rolls back.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, extra map[string]any) error {
	updates := map[string]any{"status": to}
	for column, value := range extra {
		updates[column] = value
	}

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// UpdatePaymentStatus records the payment outcome on the order row.
func (r *Repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.OrderPaymentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("payment_status", status).Error
}
