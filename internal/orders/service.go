package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/internal/inventory"
	"github.com/rasoilink/rasoilink-backend/pkg/config"
	"github.com/rasoilink/rasoilink-backend/pkg/db"
	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

// Service defines the order lifecycle surface for both marketplace sides.
type Service interface {
	Create(ctx context.Context, vendorID uuid.UUID, req CreateOrderDTO) (*OrderDTO, error)
	Get(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*OrderDTO, error)
	List(ctx context.Context, userID uuid.UUID, role enums.UserRole, filters ListFilters, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID, req UpdateStatusDTO) (*OrderDTO, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Order, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, filters ListFilters, params pagination.Params) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus, extra map[string]any) error
}

type stockRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	RestoreStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams packages the dependencies for the order flows.
type ServiceParams struct {
	TxRunner         txRunner
	OrderRepo        orderRepository
	OrderRepoFactory func(tx *gorm.DB) orderRepository
	StockRepoFactory func(tx *gorm.DB) stockRepository
	Config           config.OrdersConfig
}

// DefaultServiceParams wires the order flows to the shared DB client.
func DefaultServiceParams(client *db.Client, cfg config.OrdersConfig) ServiceParams {
	return ServiceParams{
		TxRunner:  client,
		OrderRepo: NewRepository(client.DB()),
		OrderRepoFactory: func(tx *gorm.DB) orderRepository {
			return NewRepository(tx)
		},
		StockRepoFactory: func(tx *gorm.DB) stockRepository {
			return inventory.NewRepository(tx)
		},
		Config: cfg,
	}
}

type service struct {
	tx        txRunner
	orders    orderRepository
	orderRepo func(tx *gorm.DB) orderRepository
	stockRepo func(tx *gorm.DB) stockRepository
	cfg       config.OrdersConfig
}

// NewService builds an order service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.OrderRepoFactory == nil {
		return nil, fmt.Errorf("order repository factory is required")
	}
	if params.StockRepoFactory == nil {
		return nil, fmt.Errorf("stock repository factory is required")
	}
	return &service{
		tx:        params.TxRunner,
		orders:    params.OrderRepo,
		orderRepo: params.OrderRepoFactory,
		stockRepo: params.StockRepoFactory,
		cfg:       params.Config,
	}, nil
}

func (s *service) Create(ctx context.Context, vendorID uuid.UUID, req CreateOrderDTO) (*OrderDTO, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.SupplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier_id is required")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}
	address := strings.TrimSpace(req.DeliveryAddress)
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery_address is required")
	}
	method, err := enums.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment_method must be upi or cod")
	}

	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	for _, line := range req.Items {
		if line.ItemID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item_id is required on every line")
		}
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if _, dup := seen[line.ItemID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate item on order")
		}
		seen[line.ItemID] = struct{}{}
	}

	now := time.Now().UTC()
	expected := now.AddDate(0, 0, s.deliveryDays())

	var created *models.Order
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		stock := s.stockRepo(tx)

		materials := make([]models.OrderMaterial, 0, len(req.Items))
		var total int64
		for _, line := range req.Items {
			item, err := stock.FindByID(ctx, line.ItemID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load inventory item")
			}
			if item.SupplierID != req.SupplierID {
				return pkgerrors.New(pkgerrors.CodeValidation, "all items must belong to the chosen supplier")
			}
			if !item.IsAvailable {
				return pkgerrors.New(pkgerrors.CodeStateConflict,
					fmt.Sprintf("%s is no longer available", item.Name))
			}
			if err := stock.DecrementStock(ctx, item.ID, line.Quantity); err != nil {
				if errors.Is(err, inventory.ErrInsufficientStock) {
					return pkgerrors.New(pkgerrors.CodeStateConflict,
						fmt.Sprintf("insufficient stock for %s", item.Name))
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserve stock")
			}

			lineTotal := item.PricePaise * int64(line.Quantity)
			total += lineTotal
			materials = append(materials, models.OrderMaterial{
				ID:             uuid.New(),
				ItemID:         item.ID,
				Name:           item.Name,
				Unit:           item.Unit,
				Quantity:       line.Quantity,
				UnitPricePaise: item.PricePaise,
				TotalPaise:     lineTotal,
			})
		}

		order := &models.Order{
			ID:                 uuid.New(),
			VendorID:           vendorID,
			SupplierID:         req.SupplierID,
			Status:             enums.OrderStatusPending,
			PaymentStatus:      enums.OrderPaymentStatusUnpaid,
			PaymentMethod:      method,
			TotalPaise:         total,
			DeliveryAddress:    address,
			Notes:              req.Notes,
			ExpectedDeliveryAt: &expected,
			Materials:          materials,
		}
		if err := s.orderRepo(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		created = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := FromModel(*created)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.ownedOrder(ctx, userID, role, orderID)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*order)
	return &dto, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, role enums.UserRole, filters ListFilters, params pagination.Params) (*OrderList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var rows []models.Order
	var err error
	switch role {
	case enums.UserRoleVendor:
		rows, err = s.orders.ListByVendor(ctx, userID, filters, params)
	case enums.UserRoleSupplier:
		rows, err = s.orders.ListBySupplier(ctx, userID, filters, params)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &cursor
	}

	dtos := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromModel(row))
	}
	return &OrderList{Orders: dtos, NextCursor: nextCursor}, nil
}

func (s *service) UpdateStatus(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID, req UpdateStatusDTO) (*OrderDTO, error) {
	target, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.ownedOrder(ctx, userID, role, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(role, order.Status, target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("%s orders cannot move to %s", order.Status, target))
	}

	now := time.Now().UTC()
	extra := map[string]any{}
	switch target {
	case enums.OrderStatusConfirmed:
		extra["confirmed_at"] = now
	case enums.OrderStatusInTransit:
		extra["tracking_number"] = newTrackingNumber()
	case enums.OrderStatusDelivered:
		extra["delivered_at"] = now
		// cash orders settle on handover
		if order.PaymentMethod == enums.PaymentMethodCashOnDelivery {
			extra["payment_status"] = enums.OrderPaymentStatusPaid
		}
	case enums.OrderStatusCancelled:
		extra["cancelled_at"] = now
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orderRepo(tx).UpdateStatus(ctx, order.ID, order.Status, target, extra); err != nil {
			if errors.Is(err, ErrStatusChanged) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed, reload and retry")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
		}

		if target == enums.OrderStatusCancelled {
			stock := s.stockRepo(tx)
			for _, material := range order.Materials {
				if err := stock.RestoreStock(ctx, material.ItemID, material.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "restore stock")
				}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	updated, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload order")
	}
	dto := FromModel(*updated)
	return &dto, nil
}

// ownedOrder loads an order and checks the caller sits on one of its sides.
// Foreign orders answer not-found rather than forbidden so ids stay opaque.
func (s *service) ownedOrder(ctx context.Context, userID uuid.UUID, role enums.UserRole, orderID uuid.UUID) (*models.Order, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}

	switch role {
	case enums.UserRoleVendor:
		if order.VendorID != userID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
	case enums.UserRoleSupplier:
		if order.SupplierID != userID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}
	return order, nil
}

func (s *service) deliveryDays() int {
	if s.cfg.DefaultDeliveryDays > 0 {
		return s.cfg.DefaultDeliveryDays
	}
	return 7
}

func newTrackingNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK" + strings.ToUpper(raw[:12])
}
