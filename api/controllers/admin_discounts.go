package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kamalsite/backend/api/responses"
	"github.com/kamalsite/backend/api/validators"
	"github.com/kamalsite/backend/internal/discounts"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

type adminDiscountBody struct {
	Reason      string      `json:"reason" validate:"required"`
	Percent     int         `json:"percent"`
	Seasonal    bool        `json:"seasonal"`
	Start       time.Time   `json:"start" validate:"required"`
	End         *time.Time  `json:"end"`
	Groups      []string    `json:"groups"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

func (b adminDiscountBody) toInput() discounts.CreateInput {
	return discounts.CreateInput{
		Reason:      b.Reason,
		Percent:     b.Percent,
		Seasonal:    b.Seasonal,
		Start:       b.Start,
		End:         b.End,
		Groups:      b.Groups,
		CategoryIDs: b.CategoryIDs,
	}
}

func AdminDiscountCreate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		var payload adminDiscountBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		discount, err := svc.Create(ctx, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, discount)
	}
}

func AdminDiscountUpdate(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		discountID, err := validators.UUIDParam(r, "discountId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload adminDiscountBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		discount, err := svc.Update(ctx, discountID, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, discount)
	}
}

func AdminDiscountGet(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		discountID, err := validators.UUIDParam(r, "discountId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		discount, err := svc.Get(ctx, discountID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, discount)
	}
}

func AdminDiscountList(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		rows, err := svc.List(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func AdminDiscountDelete(svc discounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "discounts service unavailable"))
			return
		}

		discountID, err := validators.UUIDParam(r, "discountId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, discountID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
