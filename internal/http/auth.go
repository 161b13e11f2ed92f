package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AdminRoles may open the admin pages (X-User-Role, set by the gateway).
var AdminRoles = []string{"SystemAdmin", "Admin", "administrator"}

func isAdminRole(role string) bool {
	role = strings.TrimSpace(role)
	for _, r := range AdminRoles {
		if strings.EqualFold(role, r) {
			return true
		}
	}
	return false
}

// RequireAdmin rejects requests whose X-User-Role is not an admin role.
func RequireAdmin(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := r.Header.Get("X-User-Role")
		if !isAdminRole(role) {
			logger.Warn("Admin access denied", zap.String("path", r.URL.Path), zap.String("role", role))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
