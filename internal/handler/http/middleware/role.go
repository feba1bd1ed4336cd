package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/homestay-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/jwt"
)

// RequireManager requires manager or admin role. Must run after AuthRequired.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := RoleFromContext(r.Context())
		if !ok || !role.CanManageShifts() {
			response.Forbidden(w, "MANAGER_ACCESS_REQUIRED", "Manager or admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows only the listed roles.
func RequireRole(roles ...jwt.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				response.Forbidden(w, "INSUFFICIENT_ROLE", "Insufficient permissions")
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "INSUFFICIENT_ROLE", fmt.Sprintf("Insufficient permissions: role '%s' is not allowed", role))
		})
	}
}
