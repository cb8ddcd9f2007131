package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

const AUTHORIZATION_HEADER = "Authorization"
const ERROR_CODE_UNAUTHORIZED = "UNAUTHORIZED"

// Authenticator resolves an access token to a merchant id.
type Authenticator interface {
	Authenticate(accessToken string) (string, error)
}

type merchantIDKey struct{}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get(AUTHORIZATION_HEADER))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// WithMerchantID stores the authenticated merchant id on ctx.
func WithMerchantID(ctx context.Context, merchantID string) context.Context {
	return context.WithValue(ctx, merchantIDKey{}, merchantID)
}

// MerchantID returns the merchant authenticated by RequireAuth.
func MerchantID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(merchantIDKey{}).(string)
	return id, ok && id != ""
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(auth Authenticator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, ERROR_CODE_UNAUTHORIZED, "Authorization token not provided")
				return
			}
			merchantID, err := auth.Authenticate(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, ERROR_CODE_UNAUTHORIZED, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithMerchantID(r.Context(), merchantID)))
		})
	}
}
