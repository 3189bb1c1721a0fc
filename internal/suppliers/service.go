package suppliers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

// MaxCompareSuppliers caps how many suppliers one comparison can hold.
const MaxCompareSuppliers = 3

// Service defines the read surface vendors use to discover suppliers.
type Service interface {
	Search(ctx context.Context, filters SearchFilters, params pagination.Params) (*SupplierList, error)
	Get(ctx context.Context, id uuid.UUID) (*SupplierDetail, error)
	Compare(ctx context.Context, ids []uuid.UUID) ([]Comparison, error)
}

type supplierRepository interface {
	List(ctx context.Context, filters SearchFilters, params pagination.Params) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

type catalogReader interface {
	ListAvailableBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.InventoryItem, error)
}

type service struct {
	repo    supplierRepository
	catalog catalogReader
}

// NewService constructs a supplier discovery service.
func NewService(repo supplierRepository, catalog catalogReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("suppliers repository is required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader is required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) Search(ctx context.Context, filters SearchFilters, params pagination.Params) (*SupplierList, error) {
	if filters.MinRating < 0 || filters.MinRating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_rating must be between 0 and 5")
	}

	rows, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list suppliers")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &cursor
	}

	summaries := make([]SupplierSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, summaryFromModel(row))
	}
	return &SupplierList{Suppliers: summaries, NextCursor: nextCursor}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SupplierDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}

	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier")
	}

	items, err := s.catalog.ListAvailableBySupplier(ctx, supplier.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier catalog")
	}

	detail := &SupplierDetail{
		SupplierSummary: summaryFromModel(*supplier),
		Phone:           supplier.Phone,
		Address:         supplier.Address,
		Items:           make([]CatalogItem, 0, len(items)),
	}
	for _, item := range items {
		detail.Items = append(detail.Items, catalogItemFromModel(item))
	}
	return detail, nil
}

func (s *service) Compare(ctx context.Context, ids []uuid.UUID) ([]Comparison, error) {
	unique := dedupe(ids)
	if len(unique) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "comparison needs at least 2 suppliers")
	}
	if len(unique) > MaxCompareSuppliers {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("comparison is capped at %d suppliers", MaxCompareSuppliers))
	}

	rows, err := s.repo.ListByIDs(ctx, unique)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load suppliers")
	}
	if len(rows) != len(unique) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "one or more suppliers not found")
	}

	byID := make(map[uuid.UUID]models.User, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	// preserve the caller's ordering
	comparisons := make([]Comparison, 0, len(unique))
	for _, id := range unique {
		supplier := byID[id]
		items, err := s.catalog.ListAvailableBySupplier(ctx, supplier.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load supplier catalog")
		}

		comparison := Comparison{
			SupplierSummary: summaryFromModel(supplier),
			ItemCount:       len(items),
			ReviewedOrders:  supplier.TotalReviews,
		}
		for _, item := range items {
			if item.Stock > 0 {
				comparison.InStockItems++
			}
			if comparison.CheapestPaise == nil || item.PricePaise < *comparison.CheapestPaise {
				price := item.PricePaise
				comparison.CheapestPaise = &price
			}
		}
		comparisons = append(comparisons, comparison)
	}
	return comparisons, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
