package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rasoilink/rasoilink-backend/api/responses"
	"github.com/rasoilink/rasoilink-backend/api/validators"
	"github.com/rasoilink/rasoilink-backend/internal/payments"
	pkgerrors "github.com/rasoilink/rasoilink-backend/pkg/errors"
	"github.com/rasoilink/rasoilink-backend/pkg/logger"
)

// PaymentsInitiate starts a payment intent for an order.
func PaymentsInitiate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		vendorID, _, err := actor(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req payments.InitiatePaymentDTO
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		intent, err := svc.Initiate(ctx, vendorID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, intent)
	}
}

// PaymentsConfirm settles an initiated intent through the simulator.
func PaymentsConfirm(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		vendorID, _, err := actor(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		intentID, err := validators.ParseUUIDParam(chi.URLParam(r, "intentID"), "intentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		intent, err := svc.Confirm(ctx, vendorID, intentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, intent)
	}
}

// PaymentsGet returns one of the caller's payment intents.
func PaymentsGet(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		vendorID, _, err := actor(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		intentID, err := validators.ParseUUIDParam(chi.URLParam(r, "intentID"), "intentID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		intent, err := svc.Get(ctx, vendorID, intentID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, intent)
	}
}
