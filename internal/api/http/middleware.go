package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/ice-solution/bniwedding-application/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "adminClaims"

// AuthMiddleware guards the admin routes. Requests carry a bearer token
// minted by the login handler.
type AuthMiddleware struct {
	tokens security.TokenManager
}

func NewAuthMiddleware(tokens security.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or expired token"})
			return
		}

		if claims.Role != security.RoleAdmin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext returns the admin claims stored by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (*security.AdminClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.AdminClaims)
	return claims, ok
}
