// Package middlewarectx содержит HTTP middleware консоли: проверку токена
// сессии, проверку прав по политике доступа и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey ключ личности, прошедшей проверку токена.
const IdentityKey Key = "identity"

// Authenticator проверяет токен сессии.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) result.Result[models.Identity]
}

// SessionMiddleware проверяет заголовок Authorization: Bearer <token>.
// При успехе кладёт личность в контекст, иначе отвечает 401.
func SessionMiddleware(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				response.Error(w, r, result.CodeUnauthorized, "missing or invalid authorization header")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

			res := auth.Authenticate(r.Context(), token)
			if !res.Success {
				log.Warn("session rejected", sl.Fail(res.Error))
				response.Render(w, r, res, http.StatusOK)
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, res.Data)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom возвращает личность из контекста запроса или nil.
func IdentityFrom(ctx context.Context) *models.Identity {
	id, ok := ctx.Value(IdentityKey).(models.Identity)
	if !ok {
		return nil
	}
	return &id
}
