package suppliers

import (
	"time"

	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
)

// SupplierSummary is the public listing shape for one supplier.
type SupplierSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	BusinessName string    `json:"business_name"`
	Location     string    `json:"location"`
	Specialties  []string  `json:"specialties"`
	Description  *string   `json:"description,omitempty"`
	Verified     bool      `json:"verified"`
	Rating       float64   `json:"rating"`
	TotalReviews int64     `json:"total_reviews"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupplierDetail extends the summary with the supplier's live catalog.
type SupplierDetail struct {
	SupplierSummary
	Phone   *string       `json:"phone,omitempty"`
	Address *string       `json:"address,omitempty"`
	Items   []CatalogItem `json:"items"`
}

// CatalogItem is the buyer-facing view of one inventory row.
type CatalogItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Unit       string    `json:"unit"`
	PricePaise int64     `json:"price_paise"`
	Stock      int       `json:"stock"`
	Quality    *string   `json:"quality,omitempty"`
}

// SearchFilters narrows the supplier listing. All filters are conjunctive.
type SearchFilters struct {
	Query        string
	Specialty    string
	Location     string
	MinRating    float64
	VerifiedOnly bool
}

// SupplierList is one page of suppliers plus the cursor for the next page.
type SupplierList struct {
	Suppliers  []SupplierSummary `json:"suppliers"`
	NextCursor *string           `json:"next_cursor,omitempty"`
}

// Comparison lines up the facts vendors weigh when picking a supplier.
type Comparison struct {
	SupplierSummary
	ItemCount      int    `json:"item_count"`
	CheapestPaise  *int64 `json:"cheapest_paise,omitempty"`
	InStockItems   int    `json:"in_stock_items"`
	ReviewedOrders int64  `json:"reviewed_orders"`
}

func summaryFromModel(u models.User) SupplierSummary {
	specialties := u.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return SupplierSummary{
		ID:           u.ID,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Location:     u.Location,
		Specialties:  specialties,
		Description:  u.Description,
		Verified:     u.Verified,
		Rating:       u.Rating(),
		TotalReviews: u.TotalReviews,
		CreatedAt:    u.CreatedAt,
	}
}

func catalogItemFromModel(item models.InventoryItem) CatalogItem {
	return CatalogItem{
		ID:         item.ID,
		Name:       item.Name,
		Category:   item.Category,
		Unit:       item.Unit,
		PricePaise: item.PricePaise,
		Stock:      item.Stock,
		Quality:    item.Quality,
	}
}
