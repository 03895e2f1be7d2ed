package sessions

import (
	"github.com/google/uuid"

	"github.com/kamalsite/backend/internal/catalog"
)

// State is everything the storefront remembers about one shopper session.
// Filter and sort settings outlive the request that set them so paging
// keeps the narrowed listing. The likes and additions shadow maps serve
// anonymous shoppers, whose toggles never reach the database.
type State struct {
	Page      int                `json:"page,omitempty"`
	Filter    *catalog.Filters   `json:"filter,omitempty"`
	Sort      *catalog.Sort      `json:"sort,omitempty"`
	CartID    *uuid.UUID         `json:"cart_id,omitempty"`
	Likes     map[uuid.UUID]bool `json:"likes,omitempty"`
	Additions map[uuid.UUID]bool `json:"additions,omitempty"`
}

// ToggleLike flips the shadow like for a product and reports the new value.
func (s *State) ToggleLike(productID uuid.UUID) bool {
	if s.Likes == nil {
		s.Likes = map[uuid.UUID]bool{}
	}
	s.Likes[productID] = !s.Likes[productID]
	return s.Likes[productID]
}

// MarkAddition records whether a product currently sits in the session cart.
func (s *State) MarkAddition(productID uuid.UUID, inCart bool) {
	if s.Additions == nil {
		s.Additions = map[uuid.UUID]bool{}
	}
	if inCart {
		s.Additions[productID] = true
		return
	}
	delete(s.Additions, productID)
}
