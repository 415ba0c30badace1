package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/shell"
)

type principalContextKey struct{}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies the bearer tokens that carry a caller's
// identity between requests. Tokens are HS256 signed and expire after the
// configured lifetime; there is no server-side session state.
type Sessions struct {
	secret   []byte
	lifetime time.Duration
}

func NewSessions(secret []byte, lifetime time.Duration) *Sessions {
	return &Sessions{secret: secret, lifetime: lifetime}
}

// IssueToken creates a signed token for the given user. The role travels
// inside the token so admin routes can be gated without a user lookup.
func (s *Sessions) IssueToken(user core.User, now time.Time) (string, error) {
	claims := sessionClaims{
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}

	return signed, nil
}

// Verify parses a token string back into the Principal it was issued for.
func (s *Sessions) Verify(tokenString string) (shell.Principal, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}

			return s.secret, nil
		})

	if err != nil {
		return shell.Principal{}, fmt.Errorf("%w: %s", core.ErrUnauthorized, err)
	}

	if !token.Valid {
		return shell.Principal{}, core.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return shell.Principal{}, fmt.Errorf("%w: malformed subject", core.ErrUnauthorized)
	}

	role, err := core.ParseRole(claims.Role)
	if err != nil {
		return shell.Principal{}, fmt.Errorf("%w: malformed role", core.ErrUnauthorized)
	}

	return shell.Principal{UserID: userID, Role: role}, nil
}

// RequireSession rejects requests without a valid bearer token and stores
// the verified Principal in the request context for downstream handlers.
func (s *Sessions) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			writeError(w, core.ErrUnauthorized)
			return
		}

		principal, err := s.Verify(tokenString)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin callers. It must be chained after
// RequireSession.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := shell.RequireAdmin(principalFrom(r.Context())); err != nil {
			writeError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// principalFrom returns the Principal placed in the context by
// RequireSession. The zero Principal (RoleUser, nil ID) is returned on
// unauthenticated requests, which every privileged handler rejects.
func principalFrom(ctx context.Context) shell.Principal {
	principal, _ := ctx.Value(principalContextKey{}).(shell.Principal)
	return principal
}
