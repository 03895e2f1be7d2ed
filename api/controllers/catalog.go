package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kamalsite/backend/api/middleware"
	"github.com/kamalsite/backend/api/responses"
	"github.com/kamalsite/backend/api/validators"
	"github.com/kamalsite/backend/internal/catalog"
	"github.com/kamalsite/backend/internal/sessions"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

// listInputFromSession assembles the catalog query from the shopper's
// saved settings plus the request.
func listInputFromSession(r *http.Request, session *middleware.Session) catalog.ListInput {
	input := catalog.ListInput{Page: 1}

	if identity := middleware.IdentityFromContext(r.Context()); identity != nil {
		userID := identity.UserID
		input.UserID = &userID
	}

	if session != nil && session.State != nil {
		state := session.State
		if state.Filter != nil {
			input.Filters = *state.Filter
		}
		if state.Sort != nil {
			input.Sort = *state.Sort
		}
		input.CartID = state.CartID
		input.AnonLikes = state.Likes
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			input.Page = page
		}
	}
	return input
}

// CatalogList serves one page of the listing under the session's filter and
// sort settings. The requested page is remembered for the next visit.
func CatalogList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		session := middleware.SessionFromContext(ctx)
		input := listInputFromSession(r, session)

		page, err := svc.List(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if session != nil && session.State.Page != page.Meta.Page {
			session.State.Page = page.Meta.Page
			session.MarkDirty()
		}

		responses.WriteSuccessMeta(w, page.Products, page.Meta)
	}
}

// CatalogDetail serves a single product page.
func CatalogDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := catalog.DetailInput{ProductID: productID}
		if identity := middleware.IdentityFromContext(ctx); identity != nil {
			userID := identity.UserID
			input.UserID = &userID
		}
		if session := middleware.SessionFromContext(ctx); session != nil && session.State != nil {
			input.CartID = session.State.CartID
			input.AnonLikes = session.State.Likes
		}

		view, err := svc.Detail(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type catalogFilterBody struct {
	Categories map[string][]string `json:"categories"`
	PriceMin   *decimal.Decimal    `json:"price_min"`
	PriceMax   *decimal.Decimal    `json:"price_max"`
	RetailOnly bool                `json:"retail_only"`
}

// CatalogFilter replaces the session's filter settings and returns the
// first page of the narrowed listing.
func CatalogFilter(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload catalogFilterBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filters := catalog.Filters{
			Categories: payload.Categories,
			PriceMin:   payload.PriceMin,
			PriceMax:   payload.PriceMax,
			RetailOnly: payload.RetailOnly,
		}
		if err := filters.Validate(); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session := middleware.SessionFromContext(ctx)
		if session != nil {
			if session.State == nil {
				session.State = &sessions.State{}
			}
			session.State.Filter = &filters
			session.State.Page = 1
			session.MarkDirty()
		}

		input := listInputFromSession(r, session)
		input.Filters = filters
		input.Page = 1

		page, err := svc.List(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, page.Products, page.Meta)
	}
}

type catalogSortBody struct {
	Key       string `json:"key" validate:"required"`
	Ascending bool   `json:"ascending"`
}

// CatalogSort replaces the session's sort setting and returns the first
// page under the new ordering.
func CatalogSort(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload catalogSortBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sort := catalog.Sort{Key: catalog.SortKey(payload.Key), Ascending: payload.Ascending}.Normalize()

		session := middleware.SessionFromContext(ctx)
		if session != nil {
			if session.State == nil {
				session.State = &sessions.State{}
			}
			session.State.Sort = &sort
			session.State.Page = 1
			session.MarkDirty()
		}

		input := listInputFromSession(r, session)
		input.Sort = sort
		input.Page = 1

		page, err := svc.List(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessMeta(w, page.Products, page.Meta)
	}
}

// CatalogPriceBounds serves the filter form's price range.
func CatalogPriceBounds(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		bounds, err := svc.PriceBounds(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, bounds)
	}
}
