package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID           uuid.UUID      `json:"id"`
	Email        string         `json:"email"`
	Name         string         `json:"name"`
	Phone        *string        `json:"phone,omitempty"`
	Role         enums.UserRole `json:"role"`
	BusinessName string         `json:"business_name"`
	Location     string         `json:"location"`
	Address      *string        `json:"address,omitempty"`
	Specialties  []string       `json:"specialties,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Verified     bool           `json:"verified"`
	Rating       float64        `json:"rating"`
	TotalReviews int64          `json:"total_reviews"`
	IsActive     bool           `json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Name         string
	Phone        *string
	Role         enums.UserRole
	BusinessName string
	Location     string
	Address      *string
	Specialties  []string
	Description  *string
}

// UpdateProfileDTO carries the mutable profile fields. Nil means unchanged.
type UpdateProfileDTO struct {
	Name         *string  `json:"name,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	BusinessName *string  `json:"business_name,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Address      *string  `json:"address,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	Description  *string  `json:"description,omitempty"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		Role:         u.Role,
		BusinessName: u.BusinessName,
		Location:     u.Location,
		Address:      u.Address,
		Specialties:  append([]string(nil), u.Specialties...),
		Description:  u.Description,
		Verified:     u.Verified,
		Rating:       u.Rating(),
		TotalReviews: u.TotalReviews,
		IsActive:     u.IsActive,
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	specialties := c.Specialties
	if specialties == nil {
		specialties = []string{}
	} else {
		specialties = append([]string(nil), specialties...)
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Name:         c.Name,
		Phone:        c.Phone,
		Role:         c.Role,
		BusinessName: c.BusinessName,
		Location:     c.Location,
		Address:      c.Address,
		Specialties:  specialties,
		Description:  c.Description,
		IsActive:     true,
	}
}
