package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims mirrors the payload minted by the identity service. The core
// trusts these values verbatim.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"rol"`
	Name   string `json:"nombre"`
	jwt.RegisteredClaims
}

// RoleOrganizer is the role allowed to create raffles and change their state.
const RoleOrganizer = "sorteador"

// Parse validates tokenStr against the shared secret and returns its claims.
func Parse(tokenStr, secret string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, ErrInvalidToken
	}
	return c, nil
}

// NewToken signs a token the way the identity service does. Used by tests
// and local tooling.
func NewToken(secret, userID, role, name string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// IsOrganizer reports whether the claims carry the organizer role. The
// original identity service is sloppy about casing and padding, so the
// comparison normalizes both.
func (c *Claims) IsOrganizer() bool {
	return strings.EqualFold(strings.TrimSpace(c.Role), RoleOrganizer)
}

type ctxKey int

const claimsKey ctxKey = 0

// FromContext returns the claims stored by WithUser.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}
