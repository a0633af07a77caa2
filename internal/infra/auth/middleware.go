package auth

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/xela07ax/gcfin-panel/internal/domain"
)

// TokenValidator is the contract both this middleware and tests depend on.
type TokenValidator interface {
	VerifyToken(tokenStr string) (*domain.Claims, error)
}

type ctxKey int

const (
	ctxKeyEmail ctxKey = iota
	ctxKeyRole
)

// NewMiddleware rejects requests without a valid token and puts the caller's
// identity and role into the request context. An absent or unknown role
// degrades to viewer, never to an error.
func NewMiddleware(v TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := v.VerifyToken(authHeader)
			if err != nil {
				logger.Warn("auth failure", zap.Error(err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			role := claims.Role
			switch role {
			case domain.RoleGC, domain.RoleFinanceYouth, domain.RoleFinanceCore:
			default:
				role = domain.RoleViewer
			}

			ctx := context.WithValue(r.Context(), ctxKeyEmail, claims.Email)
			ctx = context.WithValue(ctx, ctxKeyRole, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmailFromContext returns the authenticated caller's email, if any.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(ctxKeyEmail).(string)
	return email
}

// RoleFromContext returns the caller's role; viewer when unauthenticated.
func RoleFromContext(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(ctxKeyRole).(domain.Role); ok {
		return role
	}
	return domain.RoleViewer
}
