package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rasoilink/rasoilink-backend/internal/orders"
	"github.com/rasoilink/rasoilink-backend/internal/users"
	"github.com/rasoilink/rasoilink-backend/pkg/db"
	"github.com/rasoilink/rasoilink-backend/pkg/db/models"
	"github.com/rasoilink/rasoilink-backend/pkg/enums"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

// Service defines the review surface: vendors rate delivered orders, anyone
// can read a supplier's reviews.
type Service interface {
	Create(ctx context.Context, vendorID uuid.UUID, req CreateReviewDTO) (*ReviewDTO, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) (*ReviewList, error)
}

type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Review, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) ([]models.Review, error)
}

type orderReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type ratingAccumulator interface {
	AccumulateRating(ctx context.Context, supplierID uuid.UUID, rating int) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams packages the dependencies for the review flows.
type ServiceParams struct {
	TxRunner          txRunner
	ReviewRepo        reviewRepository
	ReviewRepoFactory func(tx *gorm.DB) reviewRepository
	OrderReaderFunc   func(tx *gorm.DB) orderReader
	RatingRepoFactory func(tx *gorm.DB) ratingAccumulator
}

// DefaultServiceParams wires the review flows to the shared DB client.
func DefaultServiceParams(client *db.Client) ServiceParams {
	return ServiceParams{
		TxRunner:   client,
		ReviewRepo: NewRepository(client.DB()),
		ReviewRepoFactory: func(tx *gorm.DB) reviewRepository {
			return NewRepository(tx)
		},
		OrderReaderFunc: func(tx *gorm.DB) orderReader {
			return orders.NewRepository(tx)
		},
		RatingRepoFactory: func(tx *gorm.DB) ratingAccumulator {
			return users.NewRepository(tx)
		},
	}
}

type service struct {
	tx         txRunner
	reviews    reviewRepository
	reviewRepo func(tx *gorm.DB) reviewRepository
	orderRepo  func(tx *gorm.DB) orderReader
	ratingRepo func(tx *gorm.DB) ratingAccumulator
}

// NewService builds a review service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.ReviewRepo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	if params.ReviewRepoFactory == nil {
		return nil, fmt.Errorf("review repository factory is required")
	}
	if params.OrderReaderFunc == nil {
		return nil, fmt.Errorf("order reader factory is required")
	}
	if params.RatingRepoFactory == nil {
		return nil, fmt.Errorf("rating repository factory is required")
	}
	return &service{
		tx:         params.TxRunner,
		reviews:    params.ReviewRepo,
		reviewRepo: params.ReviewRepoFactory,
		orderRepo:  params.OrderReaderFunc,
		ratingRepo: params.RatingRepoFactory,
	}, nil
}

// Create inserts the review and folds its rating into the supplier's
// accumulator inside one transaction, so the stored sum and count always
// agree with the review rows.
func (s *service) Create(ctx context.Context, vendorID uuid.UUID, req CreateReviewDTO) (*ReviewDTO, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order_id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	var comment *string
	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		if trimmed != "" {
			comment = &trimmed
		}
	}

	var created *models.Review
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.orderRepo(tx).FindByID(ctx, req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		if order.VendorID != vendorID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if order.Status != enums.OrderStatusDelivered {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only delivered orders can be reviewed")
		}

		reviewRepo := s.reviewRepo(tx)
		if _, err := reviewRepo.FindByOrderID(ctx, order.ID); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "order already reviewed")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing review")
		}

		review := &models.Review{
			ID:         uuid.New(),
			OrderID:    order.ID,
			VendorID:   vendorID,
			SupplierID: order.SupplierID,
			Rating:     req.Rating,
			Comment:    comment,
		}
		if err := reviewRepo.Create(ctx, review); err != nil {
			if db.IsUniqueViolation(err, "ux_reviews_order") {
				return pkgerrors.New(pkgerrors.CodeConflict, "order already reviewed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
		}

		if err := s.ratingRepo(tx).AccumulateRating(ctx, order.SupplierID, req.Rating); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "accumulate rating")
		}

		created = review
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	dto := FromModel(*created)
	return &dto, nil
}

func (s *service) ListBySupplier(ctx context.Context, supplierID uuid.UUID, params pagination.Params) (*ReviewList, error) {
	if supplierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id required")
	}

	rows, err := s.reviews.ListBySupplier(ctx, supplierID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var nextCursor *string
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &cursor
	}

	dtos := make([]ReviewDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromModel(row))
	}
	return &ReviewList{Reviews: dtos, NextCursor: nextCursor}, nil
}
