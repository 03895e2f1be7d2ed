// Package auth verifies bearer tokens issued by the external identity
// provider and exposes the resulting shopper identity.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/kamalsite/backend/pkg/errors"
)

// Verifier checks token signatures and extracts identities.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify parses and validates a bearer token. Any failure maps to an
// unauthorized error so the transport layer can answer uniformly.
func (v *Verifier) Verify(raw string) (Identity, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token subject")
	}

	return Identity{
		UserID:           userID,
		Email:            claims.Email,
		FirstName:        claims.FirstName,
		LastName:         claims.LastName,
		OrganizationName: claims.OrganizationName,
		Groups:           claims.Groups,
	}, nil
}
