package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const (
	// HeaderUserRole роль пользователя, проставляется шлюзом
	HeaderUserRole = "X-User-Role"

	// RoleAdmin роль администратора салона
	RoleAdmin = "admin"

	msgAdminOnly = "доступно только администратору"
)

// AdminOnly пропускает только запросы с ролью admin
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderUserRole) != RoleAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
