package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/pandda-console/internal/access"
	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Permission предикат политики доступа.
type Permission func(id *models.Identity, kind string) bool

// RequireEdit пропускает запрос, если личности разрешено изменять ресурсы вида kind.
func RequireEdit(kind string, log *slog.Logger) func(http.Handler) http.Handler {
	return RequirePermission(access.CanEdit, kind, log)
}

// RequireDelete пропускает запрос, если личности разрешено удалять ресурсы вида kind.
func RequireDelete(kind string, log *slog.Logger) func(http.Handler) http.Handler {
	return RequirePermission(access.CanDelete, kind, log)
}

// RequirePermission отвечает 403, если allowed запрещает операцию.
// Личность берётся из контекста, который заполняет SessionMiddleware.
func RequirePermission(allowed Permission, kind string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFrom(r.Context())
			if !allowed(id, kind) {
				attrs := []any{
					slog.String("op", "middlewarectx.RequirePermission"),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("kind", kind),
				}
				if id != nil {
					attrs = append(attrs, slog.String("role", id.Role))
				}
				log.Warn("access denied", attrs...)
				response.Error(w, r, result.CodeForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
