package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lily-0015/hotel-reservation-system/internal/domain"
)

type ctxKey int

const callerKey ctxKey = iota

// Auth resolves the opaque caller identity from a Bearer token's subject
// claim (HS256, shared secret). Who the subject actually is remains the
// identity provider's problem; here the token is only the transport.
func Auth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			tok, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !tok.Valid {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}
			sub, err := tok.Claims.GetSubject()
			if err != nil || sub == "" {
				writeProblem(w, http.StatusUnauthorized, "Unauthorized", "token has no subject")
				return
			}
			ctx := context.WithValue(r.Context(), callerKey, domain.Caller(sub))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFrom returns the identity Auth stored on the request context.
func CallerFrom(ctx context.Context) (domain.Caller, bool) {
	c, ok := ctx.Value(callerKey).(domain.Caller)
	return c, ok
}

// Token mints a caller token; used by tests and local tooling.
func Token(secret []byte, caller domain.Caller) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": string(caller)})
	return t.SignedString(secret)
}
