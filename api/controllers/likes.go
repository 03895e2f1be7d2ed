package controllers

import (
	"net/http"

	"github.com/kamalsite/backend/api/middleware"
	"github.com/kamalsite/backend/api/responses"
	"github.com/kamalsite/backend/api/validators"
	"github.com/kamalsite/backend/internal/likes"
	pkgerrors "github.com/kamalsite/backend/pkg/errors"
	"github.com/kamalsite/backend/pkg/logger"
)

// LikeToggle flips the shopper's like for a product. Authenticated toggles
// persist; anonymous ones live in the session only.
func LikeToggle(svc likes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "likes service unavailable"))
			return
		}

		productID, err := validators.UUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if identity := middleware.IdentityFromContext(ctx); identity != nil {
			like, err := svc.Toggle(ctx, identity.UserID, productID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]bool{"liked": like.Liked})
			return
		}

		session := middleware.SessionFromContext(ctx)
		if session == nil || session.State == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}

		liked, err := svc.ToggleAnonymous(ctx, session.State, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		session.MarkDirty()
		responses.WriteSuccess(w, map[string]bool{"liked": liked})
	}
}
