package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kamalsite/backend/pkg/auth"
	"github.com/kamalsite/backend/pkg/db/models"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
	"github.com/kamalsite/backend/pkg/metrics"
)

// FinalizeInput carries the order form. Shipped requests delivery to the
// given address; leaving it false means pickup and no shipment is resolved.
type FinalizeInput struct {
	Purchaser       string
	PurchaserEmail  string
	Receiver        string
	ReceiverPhone   string
	AsIndividual    bool
	Shipped         bool
	ShipmentAddress string
	ShipmentZip     string
	ShipmentCost    decimal.Decimal
}

// FormDefaults prefill the order form from the shopper's identity.
type FormDefaults struct {
	Purchaser      string `json:"purchaser"`
	PurchaserEmail string `json:"purchaser_email"`
	Receiver       string `json:"receiver"`
	AsIndividual   bool   `json:"as_individual"`
}

// Finalizer walks an order draft -> confirmed -> purchased.
type Finalizer interface {
	Defaults(identity *auth.Identity) FormDefaults
	Finalize(ctx context.Context, orderID uuid.UUID, input FinalizeInput) (*models.Order, error)
	MakePurchase(ctx context.Context, orderID uuid.UUID) (*models.Purchase, error)
}

type FinalizerParams struct {
	Client txRunner
	Repo   *Repository
	Logger *logger.Logger
}

type finalizer struct {
	client txRunner
	repo   *Repository
	logg   *logger.Logger
}

func NewFinalizer(params FinalizerParams) (Finalizer, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("orders: tx runner is required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("orders: repo is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("orders: logger is required")
	}
	return &finalizer{client: params.Client, repo: params.Repo, logg: params.Logger}, nil
}

// Defaults derives form prefill values from the identity. Companies buy
// under their organization name, individuals under their own.
func (f *finalizer) Defaults(identity *auth.Identity) FormDefaults {
	if identity == nil {
		return FormDefaults{AsIndividual: true}
	}
	defaults := FormDefaults{
		Purchaser:      identity.OrganizationName,
		PurchaserEmail: identity.Email,
		Receiver:       identity.FullName(),
		AsIndividual:   identity.OrganizationName == "",
	}
	if defaults.Purchaser == "" {
		defaults.Purchaser = identity.FullName()
	}
	return defaults
}

// Finalize validates the whole form and, only when every check passes,
// writes the fields and the confirmed flag in one transaction. A failing
// sweep reports every broken field at once and mutates nothing.
func (f *finalizer) Finalize(ctx context.Context, orderID uuid.UUID, input FinalizeInput) (*models.Order, error) {
	order, err := f.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if _, err := f.repo.GetPurchase(ctx, orderID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is already purchased")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		return nil, err
	}

	if fields := validateForm(input); len(fields) > 0 {
		return nil, pkgerrors.NewFieldErrors("order form is incomplete", fields)
	}

	err = f.client.WithTx(ctx, func(tx *gorm.DB) error {
		repo := f.repo.WithTx(tx)

		if input.Shipped {
			shipment, err := repo.GetOrCreateShipment(ctx, order.UserID,
				strings.TrimSpace(input.ShipmentAddress), strings.TrimSpace(input.ShipmentZip))
			if err != nil {
				return err
			}
			order.ShipmentID = &shipment.ID
			order.ShipmentCost = input.ShipmentCost
		} else {
			order.ShipmentID = nil
			order.ShipmentCost = decimal.Zero
		}

		order.Purchaser = strings.TrimSpace(input.Purchaser)
		order.PurchaserEmail = strings.TrimSpace(input.PurchaserEmail)
		order.Receiver = strings.TrimSpace(input.Receiver)
		order.ReceiverPhone = strings.TrimSpace(input.ReceiverPhone)
		order.AsIndividual = input.AsIndividual
		order.Shipped = input.Shipped
		order.Confirmed = true

		return repo.SaveOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func validateForm(input FinalizeInput) []pkgerrors.FieldError {
	var fields []pkgerrors.FieldError
	if strings.TrimSpace(input.Purchaser) == "" {
		fields = append(fields, pkgerrors.FieldError{
			Field: "purchaser", Code: pkgerrors.FieldCodeEmptyPurchaser,
		})
	}
	if strings.TrimSpace(input.PurchaserEmail) == "" {
		fields = append(fields, pkgerrors.FieldError{
			Field: "purchaser_email", Code: pkgerrors.FieldCodeEmptyPurchaserEmail,
		})
	}
	if strings.TrimSpace(input.Receiver) == "" {
		fields = append(fields, pkgerrors.FieldError{
			Field: "receiver", Code: pkgerrors.FieldCodeEmptyReceiver,
		})
	}
	if input.Shipped && strings.TrimSpace(input.ShipmentAddress) == "" {
		fields = append(fields, pkgerrors.FieldError{
			Field: "shipment_address", Code: pkgerrors.FieldCodeEmptyShipmentAddress,
		})
	}
	return fields
}

// MakePurchase commits a confirmed order. Calling it twice returns the
// purchase created the first time.
func (f *finalizer) MakePurchase(ctx context.Context, orderID uuid.UUID) (*models.Purchase, error) {
	order, err := f.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Confirmed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not confirmed")
	}

	purchase, created, err := f.repo.CreatePurchase(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if created {
		metrics.PurchasesTotal.Inc()
		f.logg.Info(f.logg.WithField(ctx, "order_id", orderID), "order purchased")
	}
	return purchase, nil
}
