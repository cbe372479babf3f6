package middleware

import (
	"net/http"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/handler/http/response"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || !p.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeReq)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireReviewer requires the admin or team lead role
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || !p.CanReview() {
			response.HandleError(w, user.ErrAccessDenied)
			return
		}
		next.ServeHTTP(w, r)
	})
}
