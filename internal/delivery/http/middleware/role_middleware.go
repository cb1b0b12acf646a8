package middleware

import (
	"net/http"

	"nearest-blood-locator/internal/domain/entity"
	"nearest-blood-locator/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowed ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, a := range allowed {
				if role == a {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

func RequireDonor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDonor)(next)
}

func RequireBank(next http.Handler) http.Handler {
	return RequireRole(entity.RoleBank)(next)
}

func RequireRecipient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleRecipient)(next)
}
