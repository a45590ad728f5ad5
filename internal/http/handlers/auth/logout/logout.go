// Package logout реализует HTTP-обработчик выхода. Выход всегда успешен.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
)

// Service закрывает текущую сессию.
type Service interface {
	Logout(ctx context.Context) result.Result[struct{}]
}

// Handler обрабатывает HTTP-запросы на выход.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход из консоли
// @Description Закрывает сессию процесса. Успешен и без открытой сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Сессия закрыта"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Info("logout",
		slog.String("op", "handlers.auth.logout"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	response.Render(w, r, h.service.Logout(r.Context()), http.StatusOK)
}
