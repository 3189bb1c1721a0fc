package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	"github.com/rasoilink/rasoilink-backend/pkg/types"
)

// User represents the canonical identity entity for both sides of the
// marketplace. Supplier-only columns (specialties, verification, the rating
// accumulator) stay zero-valued for vendors.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Name         string         `gorm:"column:name;not null"`
	Phone        *string        `gorm:"column:phone"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	BusinessName string         `gorm:"column:business_name;not null;default:''"`
	Location     string         `gorm:"column:location;not null;default:''"`
	Address      *string        `gorm:"column:address"`
	Specialties  []string       `gorm:"column:specialties;type:jsonb;serializer:json"`
	Description  *string        `gorm:"column:description"`
	Verified     bool           `gorm:"column:verified;not null;default:false"`
	RatingSum    int64          `gorm:"column:rating_sum;not null;default:0"`
	TotalReviews int64          `gorm:"column:total_reviews;not null;default:0"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// Rating derives the denormalized average from the accumulator pair.
func (u User) Rating() float64 {
	return types.RatingAccumulator{Sum: u.RatingSum, Count: u.TotalReviews}.Average()
}
