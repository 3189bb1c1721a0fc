package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rasoilink/rasoilink-backend/api/responses"
	"github.com/rasoilink/rasoilink-backend/api/validators"
	"github.com/rasoilink/rasoilink-backend/internal/suppliers"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/logger"
	"github.com/rasoilink/rasoilink-backend/pkg/pagination"
)

// SuppliersList searches the supplier directory with optional filters.
func SuppliersList(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		query := r.URL.Query()

		minRating, err := validators.ParseQueryFloat(r, "min_rating", 0)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		verified, err := validators.ParseQueryBool(r, "verified")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filters := suppliers.SearchFilters{
			Query:     strings.TrimSpace(query.Get("q")),
			Specialty: strings.TrimSpace(query.Get("specialty")),
			Location:  strings.TrimSpace(query.Get("location")),
			MinRating: minRating,
		}
		if verified != nil {
			filters.VerifiedOnly = *verified
		}

		page, err := svc.Search(ctx, filters, pagination.Params{
			Limit:  limit,
			Cursor: query.Get("cursor"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// SuppliersGet returns one supplier profile with its available catalog.
func SuppliersGet(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		supplierID, err := validators.ParseUUIDParam(chi.URLParam(r, "supplierID"), "supplierID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		detail, err := svc.Get(ctx, supplierID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

type compareRequest struct {
	SupplierIDs []uuid.UUID `json:"supplier_ids" validate:"required,min=2,max=3"`
}

// SuppliersCompare lines up two or three suppliers side by side.
func SuppliersCompare(svc suppliers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		var req compareRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := svc.Compare(ctx, req.SupplierIDs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"suppliers": rows})
	}
}
