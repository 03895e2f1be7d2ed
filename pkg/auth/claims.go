package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload issued by the identity provider. The store
// never writes these; it only verifies and reads them.
type Claims struct {
	jwt.RegisteredClaims
	Email            string   `json:"email"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	OrganizationName string   `json:"organization_name,omitempty"`
	Groups           []string `json:"groups,omitempty"`
}

// Identity is the verified shopper attached to a request.
type Identity struct {
	UserID           uuid.UUID
	Email            string
	FirstName        string
	LastName         string
	OrganizationName string
	Groups           []string
}

// FullName joins first and last name, tolerating either being empty.
func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}
