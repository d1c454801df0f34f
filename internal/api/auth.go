package api

import (
	"context"
	"net/http"
	"strings"
)

// TokenVerifier resolves a bearer token to the account id it was
// issued for.
type TokenVerifier interface {
	VerifyToken(token string) (uint64, error)
}

type ctxKey int

const accountIDKey ctxKey = iota

// RequireAuth rejects requests without a valid bearer token and stores
// the authenticated account id in the request context.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			accountID, err := verifier.VerifyToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accountFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(accountIDKey).(uint64)

	return id, ok
}
