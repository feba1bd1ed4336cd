package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/homestay-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/homestay-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	staffIDKey contextKey = "staff_id"
	roleKey    contextKey = "role"
)

// AuthRequired rejects requests without a valid access token and stores the
// caller's staff id and role in the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			staffID, ok := int64Claim(claims["staff_id"])
			if !ok || staffID <= 0 {
				response.Unauthorized(w, "Token is missing staff_id")
				return
			}

			roleStr, _ := claims["role"].(string)
			role := jwt.Role(roleStr)
			if !role.Valid() {
				response.Unauthorized(w, "Token carries an unknown role")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), staffID, role)))
		}
		return http.HandlerFunc(hfn)
	}
}

// WithIdentity stores the authenticated staff id and role in ctx.
func WithIdentity(ctx context.Context, staffID int64, role jwt.Role) context.Context {
	ctx = context.WithValue(ctx, staffIDKey, staffID)
	return context.WithValue(ctx, roleKey, role)
}

func StaffIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey).(int64)
	return id, ok
}

func RoleFromContext(ctx context.Context) (jwt.Role, bool) {
	role, ok := ctx.Value(roleKey).(jwt.Role)
	return role, ok
}

// Numeric private claims come back as float64 after a JSON round trip.
func int64Claim(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		id, err := n.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		return id, err == nil
	}
	return 0, false
}
