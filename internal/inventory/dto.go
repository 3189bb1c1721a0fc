package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
)

// ItemDTO is the supplier-facing view of one inventory row.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	SupplierID  uuid.UUID `json:"supplier_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`
	PricePaise  int64     `json:"price_paise"`
	Stock       int       `json:"stock"`
	MinStock    int       `json:"min_stock"`
	Quality     *string   `json:"quality,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsAvailable bool      `json:"is_available"`
	LowStock    bool      `json:"low_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateItemDTO carries the fields needed to list a new raw material.
type CreateItemDTO struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Unit        string  `json:"unit" validate:"required"`
	PricePaise  int64   `json:"price_paise" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	MinStock    int     `json:"min_stock" validate:"gte=0"`
	Quality     *string `json:"quality,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateItemDTO patches an existing item. Nil fields stay unchanged.
type UpdateItemDTO struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Unit        *string `json:"unit,omitempty"`
	PricePaise  *int64  `json:"price_paise,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	MinStock    *int    `json:"min_stock,omitempty"`
	Quality     *string `json:"quality,omitempty"`
	Description *string `json:"description,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

// FromModel converts a persisted item into its DTO.
func FromModel(item models.InventoryItem) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		SupplierID:  item.SupplierID,
		Name:        item.Name,
		Category:    item.Category,
		Unit:        item.Unit,
		PricePaise:  item.PricePaise,
		Stock:       item.Stock,
		MinStock:    item.MinStock,
		Quality:     item.Quality,
		Description: item.Description,
		IsAvailable: item.IsAvailable,
		LowStock:    item.LowStock(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
