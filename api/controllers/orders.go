package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamalsite/backend/api/middleware"
	"github.com/kamalsite/backend/api/responses"
	"github.com/kamalsite/backend/api/validators"
	"github.com/kamalsite/backend/internal/cart"
	"github.com/kamalsite/backend/internal/orders"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

type orderCreateBody struct {
	FromCart  bool             `json:"from_cart"`
	ProductID *uuid.UUID       `json:"product_id"`
	Quantity  *decimal.Decimal `json:"quantity"`
}

// OrderCreate assembles a draft order from the cart or a single product and
// returns it together with the prefilled form defaults.
func OrderCreate(ordersSvc orders.Service, finalizer orders.Finalizer, cartSvc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if ordersSvc == nil || finalizer == nil || cartSvc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload orderCreateBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !payload.FromCart && payload.ProductID == nil {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "either from_cart or product_id is required"))
			return
		}

		cartID, err := resolveCart(r, cartSvc)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := orders.CreateInput{
			CartID:    cartID,
			FromCart:  payload.FromCart,
			ProductID: payload.ProductID,
			Quantity:  payload.Quantity,
		}
		identity := middleware.IdentityFromContext(ctx)
		if identity != nil {
			userID := identity.UserID
			input.UserID = &userID
		}

		order, err := ordersSvc.CreateOrder(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order":    order,
			"defaults": finalizer.Defaults(identity),
		})
	}
}

// OrderAmount reports the order's goods total and shipment cost.
func OrderAmount(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		goods, shipment, err := svc.Amount(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]decimal.Decimal{
			"goods_amount":  goods,
			"shipment_cost": shipment,
			"total":         goods.Add(shipment),
		})
	}
}

type orderFinalizeBody struct {
	Purchaser       string          `json:"purchaser"`
	PurchaserEmail  string          `json:"purchaser_email"`
	Receiver        string          `json:"receiver"`
	ReceiverPhone   string          `json:"receiver_phone"`
	AsIndividual    bool            `json:"as_individual"`
	Shipped         bool            `json:"shipped"`
	ShipmentAddress string          `json:"shipment_address"`
	ShipmentZip     string          `json:"shipment_zip"`
	ShipmentCost    decimal.Decimal `json:"shipment_cost"`
}

// OrderFinalize validates the order form and confirms the order.
func OrderFinalize(finalizer orders.Finalizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if finalizer == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload orderFinalizeBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := finalizer.Finalize(ctx, orderID, orders.FinalizeInput{
			Purchaser:       payload.Purchaser,
			PurchaserEmail:  payload.PurchaserEmail,
			Receiver:        payload.Receiver,
			ReceiverPhone:   payload.ReceiverPhone,
			AsIndividual:    payload.AsIndividual,
			Shipped:         payload.Shipped,
			ShipmentAddress: payload.ShipmentAddress,
			ShipmentZip:     payload.ShipmentZip,
			ShipmentCost:    payload.ShipmentCost,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderPurchase commits a confirmed order. Safe to retry.
func OrderPurchase(finalizer orders.Finalizer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if finalizer == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.UUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		purchase, err := finalizer.MakePurchase(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, purchase)
	}
}
