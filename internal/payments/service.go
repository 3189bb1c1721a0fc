package payments

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/internal/orders"
	"github.com/rasoilink/rasoilink-backend/pkg/config"
	"github.com/rasoilink/rasoilink-backend/pkg/db"
	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
)

const simulatedDeclineReason = "payment declined by simulated UPI provider"

// Service defines the simulated UPI payment surface.
type Service interface {
	Initiate(ctx context.Context, vendorID uuid.UUID, req InitiatePaymentDTO) (*IntentDTO, error)
	Confirm(ctx context.Context, vendorID, intentID uuid.UUID) (*IntentDTO, error)
	Get(ctx context.Context, vendorID, intentID uuid.UUID) (*IntentDTO, error)
}

type intentRepository interface {
	Create(ctx context.Context, intent *models.PaymentIntent) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentIntent, error)
	FindActiveByOrderID(ctx context.Context, orderID uuid.UUID) (*models.PaymentIntent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.PaymentIntentStatus, extra map[string]any) error
}

type orderAccessor interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status enums.OrderPaymentStatus) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams packages the dependencies for the payment flows.
type ServiceParams struct {
	TxRunner          txRunner
	IntentRepo        intentRepository
	IntentRepoFactory func(tx *gorm.DB) intentRepository
	OrderRepo         orderAccessor
	OrderRepoFactory  func(tx *gorm.DB) orderAccessor
	Config            config.PaymentsConfig
	Rand              *rand.Rand
}

// DefaultServiceParams wires the payment flows to the shared DB client. A
// zero simulator seed means a time-derived one.
func DefaultServiceParams(client *db.Client, cfg config.PaymentsConfig) ServiceParams {
	seed := cfg.SimulatorSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return ServiceParams{
		TxRunner:   client,
		IntentRepo: NewRepository(client.DB()),
		IntentRepoFactory: func(tx *gorm.DB) intentRepository {
			return NewRepository(tx)
		},
		OrderRepo: orders.NewRepository(client.DB()),
		OrderRepoFactory: func(tx *gorm.DB) orderAccessor {
			return orders.NewRepository(tx)
		},
		Config: cfg,
		Rand:   rand.New(rand.NewSource(seed)),
	}
}

type service struct {
	tx         txRunner
	intents    intentRepository
	intentRepo func(tx *gorm.DB) intentRepository
	orders     orderAccessor
	orderRepo  func(tx *gorm.DB) orderAccessor
	cfg        config.PaymentsConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService builds a payment service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.IntentRepo == nil {
		return nil, fmt.Errorf("intent repository is required")
	}
	if params.IntentRepoFactory == nil {
		return nil, fmt.Errorf("intent repository factory is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.OrderRepoFactory == nil {
		return nil, fmt.Errorf("order repository factory is required")
	}
	if params.Rand == nil {
		return nil, fmt.Errorf("random source is required")
	}
	return &service{
		tx:         params.TxRunner,
		intents:    params.IntentRepo,
		intentRepo: params.IntentRepoFactory,
		orders:     params.OrderRepo,
		orderRepo:  params.OrderRepoFactory,
		cfg:        params.Config,
		rng:        params.Rand,
	}, nil
}

// Initiate opens a payment intent for an unpaid UPI order and marks the
// order's payment as pending. A failed earlier attempt does not block a new
// one; an intent still in flight does.
func (s *service) Initiate(ctx context.Context, vendorID uuid.UUID, req InitiatePaymentDTO) (*IntentDTO, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order_id is required")
	}

	var created *models.PaymentIntent
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.orderRepo(tx)
		order, err := orderRepo.FindByID(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		if order.VendorID != vendorID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if order.PaymentMethod != enums.PaymentMethodUPI {
			return pkgerrors.New(pkgerrors.CodeValidation, "order is not a UPI order")
		}
		if order.Status == enums.OrderStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cancelled orders cannot be paid")
		}
		if order.PaymentStatus == enums.OrderPaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is already paid")
		}

		intentRepo := s.intentRepo(tx)
		if _, err := intentRepo.FindActiveByOrderID(ctx, order.ID); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "a payment for this order is already in flight")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check active intent")
		}

		ref := newPaymentRef()
		intent := &models.PaymentIntent{
			ID:          uuid.New(),
			OrderID:     order.ID,
			Method:      enums.PaymentMethodUPI,
			Status:      enums.PaymentIntentStatusInitiated,
			AmountPaise: order.TotalPaise,
			PaymentRef:  ref,
			UPILink:     BuildUPILink(s.cfg.PayeeVPA, s.cfg.PayeeName, order.TotalPaise, ref),
		}
		if err := intentRepo.Create(ctx, intent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create payment intent")
		}

		if err := orderRepo.UpdatePaymentStatus(ctx, order.ID, enums.OrderPaymentStatusPending); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark order payment pending")
		}

		created = intent
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := FromModel(*created)
	return &dto, nil
}

// Confirm drives the intent through the simulated provider: initiated moves
// to awaiting_confirmation, then the simulator settles it as succeeded or
// failed and the order's payment status follows.
func (s *service) Confirm(ctx context.Context, vendorID, intentID uuid.UUID) (*IntentDTO, error) {
	intent, order, err := s.ownedIntent(ctx, vendorID, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already settled")
	}
	if intent.Status != enums.PaymentIntentStatusInitiated {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment confirmation already in progress")
	}

	succeeded := s.draw() < s.successRate()
	now := time.Now().UTC()

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		intentRepo := s.intentRepo(tx)

		if err := intentRepo.UpdateStatus(ctx, intent.ID,
			enums.PaymentIntentStatusInitiated,
			enums.PaymentIntentStatusAwaitingConfirmation, nil); err != nil {
			if errors.Is(err, ErrIntentStateChanged) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "payment state changed, reload and retry")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "advance payment intent")
		}

		orderRepo := s.orderRepo(tx)
		if succeeded {
			txnRef := newTransactionRef()
			err := intentRepo.UpdateStatus(ctx, intent.ID,
				enums.PaymentIntentStatusAwaitingConfirmation,
				enums.PaymentIntentStatusSucceeded,
				map[string]any{
					"transaction_ref": txnRef,
					"confirmed_at":    now,
				})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "settle payment intent")
			}
			if err := orderRepo.UpdatePaymentStatus(ctx, order.ID, enums.OrderPaymentStatusPaid); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark order paid")
			}
			return nil
		}

		err := intentRepo.UpdateStatus(ctx, intent.ID,
			enums.PaymentIntentStatusAwaitingConfirmation,
			enums.PaymentIntentStatusFailed,
			map[string]any{"failure_reason": simulatedDeclineReason})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "settle payment intent")
		}
		return orderRepo.UpdatePaymentStatus(ctx, order.ID, enums.OrderPaymentStatusFailed)
	})
	if txErr != nil {
		return nil, txErr
	}

	settled, err := s.intents.FindByID(ctx, intent.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload payment intent")
	}
	dto := FromModel(*settled)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, vendorID, intentID uuid.UUID) (*IntentDTO, error) {
	intent, _, err := s.ownedIntent(ctx, vendorID, intentID)
	if err != nil {
		return nil, err
	}
	dto := FromModel(*intent)
	return &dto, nil
}

// ownedIntent loads an intent plus its order and checks the vendor placed
// that order. Foreign intents answer not-found so ids stay opaque.
func (s *service) ownedIntent(ctx context.Context, vendorID, intentID uuid.UUID) (*models.PaymentIntent, *models.Order, error) {
	if vendorID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if intentID == uuid.Nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}

	intent, err := s.intents.FindByID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load payment intent")
	}

	order, err := s.orders.FindByID(ctx, intent.OrderID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if order.VendorID != vendorID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
	}
	return intent, order, nil
}

func (s *service) draw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *service) successRate() float64 {
	if s.cfg.SuccessRate <= 0 || s.cfg.SuccessRate > 1 {
		return 0.9
	}
	return s.cfg.SuccessRate
}
