package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamalsite/backend/api/middleware"
	"github.com/kamalsite/backend/api/responses"
	"github.com/kamalsite/backend/api/validators"
	"github.com/kamalsite/backend/internal/cart"
	"github.com/kamalsite/backend/internal/sessions"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

// resolveCart finds or creates the shopper's cart, persisting a new cart id
// into an anonymous session.
func resolveCart(r *http.Request, svc cart.Service) (uuid.UUID, error) {
	ctx := r.Context()
	session := middleware.SessionFromContext(ctx)

	var userID *uuid.UUID
	if identity := middleware.IdentityFromContext(ctx); identity != nil {
		id := identity.UserID
		userID = &id
	}

	var sessionState *sessions.State
	if session != nil {
		sessionState = session.State
	}
	hadCart := sessionState != nil && sessionState.CartID != nil

	resolved, err := svc.GetOrCreateCart(ctx, userID, sessionState)
	if err != nil {
		return uuid.Nil, err
	}

	if session != nil && !hadCart && sessionState != nil && sessionState.CartID != nil {
		session.MarkDirty()
	}
	return resolved.ID, nil
}

// CartFetch lists the cart's contents with totals.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		cartID, err := resolveCart(r, svc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.ListCart(ctx, cartID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type cartAddBody struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// CartAdd puts a product in the cart at its minimum order quantity.
func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cartID, err := resolveCart(r, svc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addition, err := svc.AddToCart(ctx, cartID, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if session := middleware.SessionFromContext(ctx); session != nil && session.State != nil {
			session.State.MarkAddition(payload.ProductID, true)
			session.MarkDirty()
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, addition)
	}
}

type cartQuantityBody struct {
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// CartSetQuantity replaces a line's quantity.
func CartSetQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		additionID, err := validators.UUIDParam(r, "additionId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload cartQuantityBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cartID, err := resolveCart(r, svc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		addition, err := svc.SetQuantity(ctx, cartID, additionID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, addition)
	}
}

// CartRemove empties a cart line.
func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		additionID, err := validators.UUIDParam(r, "additionId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		cartID, err := resolveCart(r, svc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteFromCart(ctx, cartID, additionID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
