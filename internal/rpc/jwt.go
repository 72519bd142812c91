// Package rpc is this module's gRPC transport layer: JWT-based
// authentication shared between server and client interceptors, an
// etcd-resolved client dialer, and a server constructor that wires the
// auth interceptor in ahead of whatever service the embedding
// application registers. Grounded on common/jwts/jwt.go and
// common/rpc/rpc.go.
package rpc

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated seat/session identity across a gRPC
// call, matching the teacher's CustomClaims (UserID embedded in
// jwt.RegisteredClaims).
type Claims struct {
	SessionID string `json:"sessionID"`
	TableID   string `json:"tableID"`
	jwt.RegisteredClaims
}

// IssueToken signs claims with secret, matching the teacher's GetToken.
func IssueToken(claims *Claims, secret string, ttl time.Duration) (string, error) {
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates tokenStr against secret and returns its claims,
// matching the teacher's ParseToken but returning the full Claims instead
// of just the user id, since this module's callers need the table/session
// pair, not only an identity string.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("rpc: unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("rpc: parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("rpc: token not valid")
	}
	return &claims, nil
}
