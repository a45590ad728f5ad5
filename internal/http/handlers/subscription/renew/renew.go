// Package renew реализует HTTP-обработчик продления подписки.
package renew

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Service продлевает подписку.
type Service interface {
	Renew(ctx context.Context, id string, req models.RenewRequest) result.Result[models.Subscription]
}

// Handler обрабатывает запросы продления.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Продлить подписку
// @Description Устанавливает новую дату окончания и цену, увеличивает счётчик продлений. Пустое тело допустимо.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор подписки"
// @Param request body models.RenewRequest false "Новая дата и цена"
// @Success 200 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /subscriptions/{id}/renew [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.renew"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	id := chi.URLParam(r, "id")

	var req models.RenewRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		response.Error(w, r, result.CodeBadRequest, "invalid request body")
		return
	}

	res := h.service.Renew(r.Context(), id, req)
	if !res.Success {
		log.Warn("failed to renew", slog.String("id", id), sl.Fail(res.Error))
	} else {
		log.Info("subscription renewed", slog.String("id", id), slog.Int("renewals", res.Data.Renewals))
	}
	response.Render(w, r, res, http.StatusOK)
}
