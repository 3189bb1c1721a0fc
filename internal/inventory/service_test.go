package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
)

type stubItemRepo struct {
	items   map[uuid.UUID]*models.InventoryItem
	updates map[string]any
	deleted []uuid.UUID
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: map[uuid.UUID]*models.InventoryItem{}}
}

func (s *stubItemRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	s.items[item.ID] = item
	return nil
}

func (s *stubItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *stubItemRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, item := range s.items {
		if item.SupplierID == supplierID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubItemRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	item := s.items[id]
	if stock, ok := updates["stock"].(int); ok {
		item.Stock = stock
	}
	if name, ok := updates["name"].(string); ok {
		item.Name = name
	}
	if available, ok := updates["is_available"].(bool); ok {
		item.IsAvailable = available
	}
	return nil
}

func (s *stubItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.items, id)
	return nil
}

func buildInventoryService(t *testing.T, repo *stubItemRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedItem(repo *stubItemRepo, supplierID uuid.UUID, mutate func(*models.InventoryItem)) *models.InventoryItem {
	item := &models.InventoryItem{
		ID:          uuid.New(),
		SupplierID:  supplierID,
		Name:        "Onions",
		Category:    "Vegetables",
		Unit:        "kg",
		PricePaise:  3000,
		Stock:       40,
		MinStock:    10,
		IsAvailable: true,
	}
	if mutate != nil {
		mutate(item)
	}
	repo.items[item.ID] = item
	return item
}

func TestServiceCreateItem(t *testing.T) {
	repo := newStubItemRepo()
	svc := buildInventoryService(t, repo)
	supplierID := uuid.New()

	dto, err := svc.Create(context.Background(), supplierID, CreateItemDTO{
		Name:       "  Tomatoes ",
		Category:   "Vegetables",
		Unit:       "kg",
		PricePaise: 2500,
		Stock:      100,
		MinStock:   20,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Name != "Tomatoes" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if !dto.IsAvailable {
		t.Fatalf("new items should default to available")
	}
	if dto.SupplierID != supplierID {
		t.Fatalf("item not bound to supplier")
	}
	if dto.LowStock {
		t.Fatalf("stock 100 over min 20 should not be low")
	}
}

func TestServiceCreateRejectsBadInput(t *testing.T) {
	repo := newStubItemRepo()
	svc := buildInventoryService(t, repo)

	cases := []CreateItemDTO{
		{Name: "", Category: "Vegetables", Unit: "kg"},
		{Name: "Tomatoes", Category: "Vegetables", Unit: "kg", PricePaise: -1},
		{Name: "Tomatoes", Category: "Vegetables", Unit: "kg", Stock: -5},
	}
	for i, req := range cases {
		_, err := svc.Create(context.Background(), uuid.New(), req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestServiceListMineFlagsLowStock(t *testing.T) {
	repo := newStubItemRepo()
	supplierID := uuid.New()
	seedItem(repo, supplierID, func(i *models.InventoryItem) {
		i.Stock = 5
		i.MinStock = 10
	})
	seedItem(repo, uuid.New(), nil) // someone else's item
	svc := buildInventoryService(t, repo)

	items, err := svc.ListMine(context.Background(), supplierID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected only own items, got %d", len(items))
	}
	if !items[0].LowStock {
		t.Fatalf("stock 5 under min 10 should be flagged low")
	}
}

func TestServiceUpdateOwnedItem(t *testing.T) {
	repo := newStubItemRepo()
	supplierID := uuid.New()
	item := seedItem(repo, supplierID, nil)
	svc := buildInventoryService(t, repo)

	stock := 5
	hidden := false
	dto, err := svc.Update(context.Background(), supplierID, item.ID, UpdateItemDTO{
		Stock:       &stock,
		IsAvailable: &hidden,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Stock != 5 || dto.IsAvailable {
		t.Fatalf("unexpected state after update: %+v", dto)
	}
	if !dto.LowStock {
		t.Fatalf("stock 5 under min 10 should be flagged low")
	}
}

func TestServiceUpdateForeignItemNotFound(t *testing.T) {
	repo := newStubItemRepo()
	item := seedItem(repo, uuid.New(), nil)
	svc := buildInventoryService(t, repo)

	name := "Renamed"
	_, err := svc.Update(context.Background(), uuid.New(), item.ID, UpdateItemDTO{Name: &name})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign item, got %v", err)
	}
}

func TestServiceUpdateRejectsNegativeStock(t *testing.T) {
	repo := newStubItemRepo()
	supplierID := uuid.New()
	item := seedItem(repo, supplierID, nil)
	svc := buildInventoryService(t, repo)

	stock := -1
	_, err := svc.Update(context.Background(), supplierID, item.ID, UpdateItemDTO{Stock: &stock})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	repo := newStubItemRepo()
	supplierID := uuid.New()
	item := seedItem(repo, supplierID, nil)
	svc := buildInventoryService(t, repo)

	if err := svc.Delete(context.Background(), supplierID, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != item.ID {
		t.Fatalf("expected delete of %s, got %v", item.ID, repo.deleted)
	}

	err := svc.Delete(context.Background(), supplierID, item.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
