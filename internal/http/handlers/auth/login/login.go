// Package login реализует HTTP-обработчик входа в консоль.
//
// Handler декодирует учётные данные, проверяет обязательные поля и
// открывает сессию через сервис аутентификации. В ответ отдаётся сессия
// с токеном, который дальше передаётся в заголовке Authorization.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pandda-console/internal/http/response"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Request учётные данные для входа.
type Request struct {
	Email    string `json:"email" validate:"required" example:"admin@pandda.test"`
	Password string `json:"password" validate:"required" example:"admin"`
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) result.Result[models.Session]
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход в консоль
// @Description Проверяет учётные данные по списку допуска и открывает сессию процесса.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} map[string]any "Открытая сессия"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Error(w, r, result.CodeBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("validation failed", sl.Err(err))
			response.Error(w, r, result.CodeValidation, "invalid request")
			return
		}
		log.Info("validation failed", sl.Err(err))
		response.Error(w, r, result.CodeValidation, response.ValidationMessage(verrs))
		return
	}

	res := h.service.Login(r.Context(), req.Email, req.Password)
	if !res.Success {
		log.Warn("login failed", slog.String("email", req.Email), sl.Fail(res.Error))
	} else {
		log.Info("login success", slog.String("email", res.Data.User.Email))
	}
	response.Render(w, r, res, http.StatusOK)
}
