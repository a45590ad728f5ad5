// Package session отдаёт текущую сессию процесса.
package session

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Service отдаёт текущую сессию или nil.
type Service interface {
	Session(ctx context.Context) *models.Session
}

// Handler обрабатывает запросы текущей сессии.
type Handler struct {
	service Service
}

// New создает новый экземпляр Handler.
func New(service Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP godoc
// @Summary Текущая сессия
// @Description Возвращает сессию процесса. Поле data отсутствует, если вход не выполнен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Сессия или пустой результат"
// @Router /session [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.Render(w, r, result.OK(h.service.Session(r.Context())), http.StatusOK)
}
