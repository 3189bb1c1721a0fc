package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
)

// Service defines the supplier-scoped catalog management surface.
type Service interface {
	ListMine(ctx context.Context, supplierID uuid.UUID) ([]ItemDTO, error)
	Get(ctx context.Context, supplierID, itemID uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, supplierID uuid.UUID, req CreateItemDTO) (*ItemDTO, error)
	Update(ctx context.Context, supplierID, itemID uuid.UUID, req UpdateItemDTO) (*ItemDTO, error)
	Delete(ctx context.Context, supplierID, itemID uuid.UUID) error
}

type itemRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo itemRepository
}

// NewService constructs an inventory service with the provided dependencies.
func NewService(repo itemRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListMine(ctx context.Context, supplierID uuid.UUID) ([]ItemDTO, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	items, err := s.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inventory")
	}
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, FromModel(item))
	}
	return dtos, nil
}

func (s *service) Get(ctx context.Context, supplierID, itemID uuid.UUID) (*ItemDTO, error) {
	item, err := s.ownedItem(ctx, supplierID, itemID)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*item)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, supplierID uuid.UUID, req CreateItemDTO) (*ItemDTO, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	unit := strings.TrimSpace(req.Unit)
	if name == "" || category == "" || unit == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, category and unit are required")
	}
	if req.PricePaise < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if req.Stock < 0 || req.MinStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock levels cannot be negative")
	}

	item := &models.InventoryItem{
		ID:          uuid.New(),
		SupplierID:  supplierID,
		Name:        name,
		Category:    category,
		Unit:        unit,
		PricePaise:  req.PricePaise,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Quality:     req.Quality,
		Description: req.Description,
		IsAvailable: true,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create inventory item")
	}
	dto := FromModel(*item)
	return &dto, nil
}

func (s *service) Update(ctx context.Context, supplierID, itemID uuid.UUID, req UpdateItemDTO) (*ItemDTO, error) {
	item, err := s.ownedItem(ctx, supplierID, itemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
		}
		updates["category"] = category
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		if unit == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit cannot be empty")
		}
		updates["unit"] = unit
	}
	if req.PricePaise != nil {
		if *req.PricePaise < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price_paise"] = *req.PricePaise
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
		}
		updates["stock"] = *req.Stock
	}
	if req.MinStock != nil {
		if *req.MinStock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_stock cannot be negative")
		}
		updates["min_stock"] = *req.MinStock
	}
	if req.Quality != nil {
		updates["quality"] = strings.TrimSpace(*req.Quality)
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) == 0 {
		dto := FromModel(*item)
		return &dto, nil
	}

	if err := s.repo.Update(ctx, item.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update inventory item")
	}

	updated, err := s.repo.FindByID(ctx, item.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload inventory item")
	}
	dto := FromModel(*updated)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, supplierID, itemID uuid.UUID) error {
	item, err := s.ownedItem(ctx, supplierID, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete inventory item")
	}
	return nil
}

// ownedItem loads an item and checks the caller is the listing supplier.
// Foreign items answer not-found rather than forbidden so ids stay opaque.
func (s *service) ownedItem(ctx context.Context, supplierID, itemID uuid.UUID) (*models.InventoryItem, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if itemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
	}
	if item.SupplierID != supplierID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return item, nil
}
