package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/kamalsite/backend/pkg/errors"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func shopperClaims(subject string) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    "idp.example",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email:            "ada@example.com",
		FirstName:        "Ada",
		LastName:         "Byron",
		OrganizationName: "Acme Oy",
		Groups:           []string{"admin"},
	}
}

func TestVerifyExtractsIdentity(t *testing.T) {
	verifier := NewVerifier(testSecret, "idp.example")
	userID := uuid.New()

	raw := signToken(t, jwt.SigningMethodHS256, testSecret, shopperClaims(userID.String()))

	identity, err := verifier.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "Ada Byron", identity.FullName())
	assert.Equal(t, "Acme Oy", identity.OrganizationName)
	assert.Contains(t, identity.Groups, "admin")
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	verifier := NewVerifier(testSecret, "idp.example")
	userID := uuid.NewString()

	cases := []struct {
		name string
		raw  string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signToken(t, jwt.SigningMethodHS256, "other-secret", shopperClaims(userID))},
		{"wrong algorithm", signToken(t, jwt.SigningMethodHS384, testSecret, shopperClaims(userID))},
		{"bad subject", signToken(t, jwt.SigningMethodHS256, testSecret, shopperClaims("not-a-uuid"))},
		{"wrong issuer", signToken(t, jwt.SigningMethodHS256, testSecret, func() Claims {
			c := shopperClaims(userID)
			c.Issuer = "someone-else"
			return c
		}())},
		{"expired", signToken(t, jwt.SigningMethodHS256, testSecret, func() Claims {
			c := shopperClaims(userID)
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
			return c
		}())},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := verifier.Verify(tc.raw)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
		})
	}
}

func TestFullNameTolerantOfMissingParts(t *testing.T) {
	assert.Equal(t, "Ada", Identity{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Byron", Identity{LastName: "Byron"}.FullName())
	assert.Equal(t, "", Identity{}.FullName())
}
