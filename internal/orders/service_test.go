package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/internal/inventory"
	"github.com/rasoilink/rasoilink-backend/pkg/config"
	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

type stubTxRunner struct{}

func (s *stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOrderRepo struct {
	orders        map[uuid.UUID]*models.Order
	created       *models.Order
	statusUpdates []map[string]any
	statusErr     error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	s.created = order
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderRepo) ListByVendor(ctx context.Context, vendorID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.VendorID != vendorID {
			continue
		}
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrderRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Order, error) {
	var out []models.Order
	for _, order := range s.orders {
		if order.SupplierID != supplierID {
			continue
		}
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, extra map[string]any) error {
	if s.statusErr != nil {
		return s.statusErr
	}
	order, ok := s.orders[id]
	if !ok || order.Status != from {
		return ErrStatusChanged
	}
	order.Status = to
	if status, ok := extra["payment_status"].(enums.OrderPaymentStatus); ok {
		order.PaymentStatus = status
	}
	if tracking, ok := extra["tracking_number"].(string); ok {
		order.TrackingNumber = &tracking
	}
	s.statusUpdates = append(s.statusUpdates, extra)
	return nil
}

type stubStockRepo struct {
	items    map[uuid.UUID]*models.InventoryItem
	restored map[uuid.UUID]int
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{
		items:    map[uuid.UUID]*models.InventoryItem{},
		restored: map[uuid.UUID]int{},
	}
}

func (s *stubStockRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *stubStockRepo) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	item, ok := s.items[id]
	if !ok || item.Stock < quantity {
		return inventory.ErrInsufficientStock
	}
	item.Stock -= quantity
	return nil
}

func (s *stubStockRepo) RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error {
	s.restored[id] += quantity
	if item, ok := s.items[id]; ok {
		item.Stock += quantity
	}
	return nil
}

func buildOrderService(t *testing.T, orderRepo *stubOrderRepo, stockRepo *stubStockRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		TxRunner:  &stubTxRunner{},
		OrderRepo: orderRepo,
		OrderRepoFactory: func(tx *gorm.DB) orderRepository {
			return orderRepo
		},
		StockRepoFactory: func(tx *gorm.DB) stockRepository {
			return stockRepo
		},
		Config: config.OrdersConfig{DefaultDeliveryDays: 5},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func stockItem(repo *stubStockRepo, supplierID uuid.UUID, name string, pricePaise int64, stock int) *models.InventoryItem {
	item := &models.InventoryItem{
		ID:          uuid.New(),
		SupplierID:  supplierID,
		Name:        name,
		Category:    "Vegetables",
		Unit:        "kg",
		PricePaise:  pricePaise,
		Stock:       stock,
		IsAvailable: true,
	}
	repo.items[item.ID] = item
	return item
}

func seedOrder(repo *stubOrderRepo, mutate func(*models.Order)) *models.Order {
	order := &models.Order{
		ID:              uuid.New(),
		VendorID:        uuid.New(),
		SupplierID:      uuid.New(),
		Status:          enums.OrderStatusPending,
		PaymentStatus:   enums.OrderPaymentStatusUnpaid,
		PaymentMethod:   enums.PaymentMethodUPI,
		TotalPaise:      10000,
		DeliveryAddress: "Stall 14, Juhu Beach",
	}
	if mutate != nil {
		mutate(order)
	}
	repo.orders[order.ID] = order
	return order
}

func TestServiceCreateSnapshotsLinesAndTotals(t *testing.T) {
	orderRepo := newStubOrderRepo()
	stockRepo := newStubStockRepo()
	supplierID := uuid.New()
	onions := stockItem(stockRepo, supplierID, "Onions", 3000, 100)
	oil := stockItem(stockRepo, supplierID, "Oil", 15000, 20)
	svc := buildOrderService(t, orderRepo, stockRepo)

	dto, err := svc.Create(context.Background(), uuid.New(), CreateOrderDTO{
		SupplierID: supplierID,
		Items: []LineRequest{
			{ItemID: onions.ID, Quantity: 10},
			{ItemID: oil.ID, Quantity: 2},
		},
		DeliveryAddress: "Stall 14, Juhu Beach",
		PaymentMethod:   "upi",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 10*3000 + 2*15000
	if dto.TotalPaise != 60000 {
		t.Fatalf("expected total 60000, got %d", dto.TotalPaise)
	}
	var lineSum int64
	for _, line := range dto.Items {
		if line.TotalPaise != line.UnitPricePaise*int64(line.Quantity) {
			t.Fatalf("line total mismatch: %+v", line)
		}
		lineSum += line.TotalPaise
	}
	if lineSum != dto.TotalPaise {
		t.Fatalf("order total %d does not equal line sum %d", dto.TotalPaise, lineSum)
	}
	if dto.Status != enums.OrderStatusPending {
		t.Fatalf("new orders must start pending, got %s", dto.Status)
	}
	if dto.ExpectedDeliveryAt == nil {
		t.Fatalf("expected delivery date missing")
	}
	if stockRepo.items[onions.ID].Stock != 90 {
		t.Fatalf("expected stock reserved, got %d", stockRepo.items[onions.ID].Stock)
	}
}

func TestServiceCreateRejectsMixedSuppliers(t *testing.T) {
	orderRepo := newStubOrderRepo()
	stockRepo := newStubStockRepo()
	supplierID := uuid.New()
	mine := stockItem(stockRepo, supplierID, "Onions", 3000, 100)
	foreign := stockItem(stockRepo, uuid.New(), "Oil", 15000, 20)
	svc := buildOrderService(t, orderRepo, stockRepo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderDTO{
		SupplierID: supplierID,
		Items: []LineRequest{
			{ItemID: mine.ID, Quantity: 1},
			{ItemID: foreign.ID, Quantity: 1},
		},
		DeliveryAddress: "Stall 14",
		PaymentMethod:   "upi",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceCreateInsufficientStock(t *testing.T) {
	orderRepo := newStubOrderRepo()
	stockRepo := newStubStockRepo()
	supplierID := uuid.New()
	item := stockItem(stockRepo, supplierID, "Onions", 3000, 5)
	svc := buildOrderService(t, orderRepo, stockRepo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderDTO{
		SupplierID:      supplierID,
		Items:           []LineRequest{{ItemID: item.ID, Quantity: 6}},
		DeliveryAddress: "Stall 14",
		PaymentMethod:   "upi",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestServiceCreateRejectsUnavailableItem(t *testing.T) {
	orderRepo := newStubOrderRepo()
	stockRepo := newStubStockRepo()
	supplierID := uuid.New()
	item := stockItem(stockRepo, supplierID, "Onions", 3000, 50)
	item.IsAvailable = false
	svc := buildOrderService(t, orderRepo, stockRepo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateOrderDTO{
		SupplierID:      supplierID,
		Items:           []LineRequest{{ItemID: item.ID, Quantity: 1}},
		DeliveryAddress: "Stall 14",
		PaymentMethod:   "upi",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestServiceSupplierConfirmsOrder(t *testing.T) {
	orderRepo := newStubOrderRepo()
	stockRepo := newStubStockRepo()
	order := seedOrder(orderRepo, nil)
	svc := buildOrderService(t, orderRepo, stockRepo)

	dto, err := svc.UpdateStatus(context.Background(), order.SupplierID, enums.UserRoleSupplier, order.ID, UpdateStatusDTO{Status: "confirmed"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if dto.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", dto.Status)
	}
	if len(orderRepo.statusUpdates) != 1 {
		t.Fatalf("expected one guarded update")
	}
	if _, ok := orderRepo.statusUpdates[0]["confirmed_at"]; !ok {
		t.Fatalf("expected confirmed_at timestamp in update")
	}
}

func TestServiceShippingAssignsTracking(t *testing.T) {
	orderRepo := newStubOrderRepo()
	order := seedOrder(orderRepo, func(o *models.Order) { o.Status = enums.OrderStatusConfirmed })
	svc := buildOrderService(t, orderRepo, newStubStockRepo())

	dto, err := svc.UpdateStatus(context.Background(), order.SupplierID, enums.UserRoleSupplier, order.ID, UpdateStatusDTO{Status: "in_transit"})
	if err != nil {
		t.Fatalf("ship: %v", err)
	}
	if dto.TrackingNumber == nil || !strings.HasPrefix(*dto.TrackingNumber, "TRK") {
		t.Fatalf("expected TRK tracking number, got %v", dto.TrackingNumber)
	}
}

func TestServiceDeliverySettlesCashOrders(t *testing.T) {
	orderRepo := newStubOrderRepo()
	order := seedOrder(orderRepo, func(o *models.Order) {
		o.Status = enums.OrderStatusInTransit
		o.PaymentMethod = enums.PaymentMethodCashOnDelivery
	})
	svc := buildOrderService(t, orderRepo, newStubStockRepo())

	dto, err := svc.UpdateStatus(context.Background(), order.SupplierID, enums.UserRoleSupplier, order.ID, UpdateStatusDTO{Status: "delivered"})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if dto.PaymentStatus != enums.OrderPaymentStatusPaid {
		t.Fatalf("cash order should settle on delivery, got %s", dto.PaymentStatus)
	}
}

func TestServiceVendorCancelRestoresStock(t *testing.T) {
	orderRepo := newStubOrderRepo()
	stockRepo := newStubStockRepo()
	itemID := uuid.New()
	order := seedOrder(orderRepo, func(o *models.Order) {
		o.Materials = []models.OrderMaterial{{
			ID:             uuid.New(),
			ItemID:         itemID,
			Name:           "Onions",
			Unit:           "kg",
			Quantity:       10,
			UnitPricePaise: 3000,
			TotalPaise:     30000,
		}}
	})
	svc := buildOrderService(t, orderRepo, stockRepo)

	dto, err := svc.UpdateStatus(context.Background(), order.VendorID, enums.UserRoleVendor, order.ID, UpdateStatusDTO{Status: "cancelled"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if dto.Status != enums.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", dto.Status)
	}
	if stockRepo.restored[itemID] != 10 {
		t.Fatalf("expected 10 units restored, got %d", stockRepo.restored[itemID])
	}
}

func TestServiceVendorCannotConfirm(t *testing.T) {
	orderRepo := newStubOrderRepo()
	order := seedOrder(orderRepo, nil)
	svc := buildOrderService(t, orderRepo, newStubStockRepo())

	_, err := svc.UpdateStatus(context.Background(), order.VendorID, enums.UserRoleVendor, order.ID, UpdateStatusDTO{Status: "confirmed"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestServiceConcurrentTransitionConflicts(t *testing.T) {
	orderRepo := newStubOrderRepo()
	order := seedOrder(orderRepo, nil)
	orderRepo.statusErr = ErrStatusChanged
	svc := buildOrderService(t, orderRepo, newStubStockRepo())

	_, err := svc.UpdateStatus(context.Background(), order.SupplierID, enums.UserRoleSupplier, order.ID, UpdateStatusDTO{Status: "confirmed"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on lost race, got %v", err)
	}
}

func TestServiceGetHidesForeignOrders(t *testing.T) {
	orderRepo := newStubOrderRepo()
	order := seedOrder(orderRepo, nil)
	svc := buildOrderService(t, orderRepo, newStubStockRepo())

	if _, err := svc.Get(context.Background(), order.VendorID, enums.UserRoleVendor, order.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}

	_, err := svc.Get(context.Background(), uuid.New(), enums.UserRoleVendor, order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign vendor, got %v", err)
	}
}

func TestServiceListScopesByRole(t *testing.T) {
	orderRepo := newStubOrderRepo()
	vendorID := uuid.New()
	seedOrder(orderRepo, func(o *models.Order) { o.VendorID = vendorID })
	seedOrder(orderRepo, nil)
	svc := buildOrderService(t, orderRepo, newStubStockRepo())

	list, err := svc.List(context.Background(), vendorID, enums.UserRoleVendor, ListFilters{}, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Orders) != 1 {
		t.Fatalf("expected vendor to see only own orders, got %d", len(list.Orders))
	}
}

func TestServiceListFiltersByStatus(t *testing.T) {
	orderRepo := newStubOrderRepo()
	vendorID := uuid.New()
	seedOrder(orderRepo, func(o *models.Order) { o.VendorID = vendorID })
	seedOrder(orderRepo, func(o *models.Order) {
		o.VendorID = vendorID
		o.Status = enums.OrderStatusDelivered
	})
	svc := buildOrderService(t, orderRepo, newStubStockRepo())

	delivered := enums.OrderStatusDelivered
	list, err := svc.List(context.Background(), vendorID, enums.UserRoleVendor,
		ListFilters{Status: &delivered}, pagination.Params{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Orders) != 1 || list.Orders[0].Status != enums.OrderStatusDelivered {
		t.Fatalf("expected only the delivered order, got %+v", list.Orders)
	}
}
