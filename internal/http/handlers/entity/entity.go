// Package entity реализует HTTP-обработчики CRUD для любой сущности консоли.
//
// Handler параметризован типом записи, данными создания и частичным
// обновлением. Валидация и коды ошибок приходят из сервиса данных,
// обработчик только декодирует запрос и переводит результат в HTTP-ответ.
package entity

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
)

const msgNotFound = "record not found"

// Service описывает операции сервиса данных одной сущности.
type Service[T, In, P any] interface {
	List(ctx context.Context) result.Result[[]T]
	Get(ctx context.Context, id string) result.Result[*T]
	Create(ctx context.Context, in In) result.Result[T]
	Update(ctx context.Context, id string, patch P) result.Result[T]
	Delete(ctx context.Context, id string) result.Result[T]
}

// Handler обслуживает маршруты /{kind} и /{kind}/{id}.
type Handler[T, In, P any] struct {
	log     *slog.Logger
	kind    string
	service Service[T, In, P]
}

// New создает новый экземпляр Handler для вида ресурса kind.
func New[T, In, P any](log *slog.Logger, kind string, service Service[T, In, P]) *Handler[T, In, P] {
	return &Handler[T, In, P]{log: log, kind: kind, service: service}
}

func (h *Handler[T, In, P]) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", "handlers.entity."+op),
		slog.String("kind", h.kind),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List godoc
// @Summary Список записей
// @Tags Entities
// @Produce  json
// @Security BearerAuth
// @Param kind path string true "clients, plans, apps, servers, subscriptions или users"
// @Success 200 {object} map[string]any
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /{kind} [get]
func (h *Handler[T, In, P]) List(w http.ResponseWriter, r *http.Request) {
	res := h.service.List(r.Context())
	if !res.Success {
		h.logger(r, "list").Error("failed to list", sl.Fail(res.Error))
	}
	response.Render(w, r, res, http.StatusOK)
}

// Get godoc
// @Summary Запись по идентификатору
// @Tags Entities
// @Produce  json
// @Security BearerAuth
// @Param kind path string true "Вид ресурса"
// @Param id path string true "Идентификатор"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse
// @Router /{kind}/{id} [get]
func (h *Handler[T, In, P]) Get(w http.ResponseWriter, r *http.Request) {
	res := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if res.Success && res.Data == nil {
		response.Error(w, r, result.CodeNotFound, msgNotFound)
		return
	}
	if !res.Success {
		h.logger(r, "get").Error("failed to get", sl.Fail(res.Error))
	}
	response.Render(w, r, res, http.StatusOK)
}

// Create godoc
// @Summary Создать запись
// @Tags Entities
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param kind path string true "Вид ресурса"
// @Param request body map[string]any true "Поля записи"
// @Success 201 {object} map[string]any
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /{kind} [post]
func (h *Handler[T, In, P]) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "create")

	var in In
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Error(w, r, result.CodeBadRequest, "invalid request body")
		return
	}

	res := h.service.Create(r.Context(), in)
	if !res.Success {
		log.Warn("failed to create", sl.Fail(res.Error))
	}
	response.Render(w, r, res, http.StatusCreated)
}

// Update godoc
// @Summary Изменить запись
// @Description Частичное обновление: переданные поля заменяют текущие.
// @Tags Entities
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param kind path string true "Вид ресурса"
// @Param id path string true "Идентификатор"
// @Param request body map[string]any true "Изменяемые поля"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse
// @Router /{kind}/{id} [patch]
func (h *Handler[T, In, P]) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "update")

	var patch P
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Error(w, r, result.CodeBadRequest, "invalid request body")
		return
	}

	res := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if !res.Success {
		log.Warn("failed to update", sl.Fail(res.Error))
	}
	response.Render(w, r, res, http.StatusOK)
}

// Delete godoc
// @Summary Удалить запись
// @Tags Entities
// @Produce  json
// @Security BearerAuth
// @Param kind path string true "Вид ресурса"
// @Param id path string true "Идентификатор"
// @Success 200 {object} map[string]any
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Сервер связан с приложениями"
// @Router /{kind}/{id} [delete]
func (h *Handler[T, In, P]) Delete(w http.ResponseWriter, r *http.Request) {
	res := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if !res.Success {
		h.logger(r, "delete").Warn("failed to delete", sl.Fail(res.Error))
	}
	response.Render(w, r, res, http.StatusOK)
}
