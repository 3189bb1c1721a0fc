package suppliers

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

// Repository exposes supplier-side reads over the users table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a suppliers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns one page of active suppliers matching the filters, newest
// first. Query matching is a case-insensitive substring test against the
// name, business name, and specialties.
func (r *Repository) List(ctx context.Context, filters SearchFilters, params pagination.Params) ([]models.User, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", enums.UserRoleSupplier).
		Where("is_active = ?", true)

	if needle := strings.ToLower(strings.TrimSpace(filters.Query)); needle != "" {
		pattern := "%" + needle + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(business_name) LIKE ? OR LOWER(CAST(specialties AS TEXT)) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if specialty := strings.ToLower(strings.TrimSpace(filters.Specialty)); specialty != "" {
		q = q.Where("LOWER(CAST(specialties AS TEXT)) LIKE ?", "%"+specialty+"%")
	}
	if location := strings.ToLower(strings.TrimSpace(filters.Location)); location != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+location+"%")
	}
	if filters.VerifiedOnly {
		q = q.Where("verified = ?", true)
	}
	if filters.MinRating > 0 {
		// avg >= min without dividing: sum >= min * count, and unrated
		// suppliers never qualify.
		q = q.Where("total_reviews > 0 AND rating_sum >= ? * total_reviews", filters.MinRating)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var suppliers []models.User
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

// FindByID loads one active supplier.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var supplier models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND is_active = ?", id, enums.UserRoleSupplier, true).
		First(&supplier).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// ListByIDs loads the requested suppliers, skipping ids that do not resolve
// to an active supplier.
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var suppliers []models.User
	err := r.db.WithContext(ctx).
		Where("id IN ? AND role = ? AND is_active = ?", ids, enums.UserRoleSupplier, true).
		Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}
