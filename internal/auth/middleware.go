package auth

import (
	"net/http"
	"strings"

	"github.com/pushparaj09/medishift-ai/internal"
	"github.com/pushparaj09/medishift-ai/internal/transport"
)

// Middleware authenticates requests and puts the caller's identity and
// role on the request context.
func Middleware(service ServiceAPI, base *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				base.WriteError(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			claims, err := service.ValidateAccessToken(token)
			if err != nil {
				switch err {
				case ErrTokenExpired:
					base.WriteError(w, http.StatusUnauthorized, "token expired")
				default:
					base.WriteError(w, http.StatusUnauthorized, "invalid token")
				}
				return
			}

			ctx := internal.ContextWithUserID(r.Context(), claims.UserID)
			ctx = internal.ContextWithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards management endpoints. Must run after Middleware.
func RequireAdmin(base *transport.BaseHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if internal.RoleFromContext(r.Context()) != "Administrator" {
				base.WriteError(w, http.StatusForbidden, "administrator privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
