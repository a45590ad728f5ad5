// Package response переводит единый результат сервисов в HTTP-ответ:
// код ошибки определяет статус, тело всегда повторяет формат результата.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
)

// ErrorResponse тело неуспешного ответа для Swagger-документации.
type ErrorResponse struct {
	Success bool         `json:"success" example:"false"`
	Error   result.Error `json:"error"`
}

// Status возвращает HTTP-статус для кода ошибки.
func Status(code result.Code) int {
	switch code {
	case result.CodeValidation:
		return http.StatusUnprocessableEntity
	case result.CodeNotFound:
		return http.StatusNotFound
	case result.CodeFKViolation:
		return http.StatusConflict
	case result.CodeInvalidCredentials, result.CodeUnauthorized:
		return http.StatusUnauthorized
	case result.CodeForbidden:
		return http.StatusForbidden
	case result.CodeBadRequest:
		return http.StatusBadRequest
	case result.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Render пишет результат как JSON. Успех отдаётся со статусом ok,
// неуспех со статусом по коду ошибки.
func Render[T any](w http.ResponseWriter, r *http.Request, res result.Result[T], ok int) {
	status := ok
	if !res.Success {
		status = http.StatusInternalServerError
		if res.Error != nil {
			status = Status(res.Error.Code)
		}
	}
	render.Status(r, status)
	render.JSON(w, r, res)
}

// Error пишет неуспешный результат с кодом и сообщением.
func Error(w http.ResponseWriter, r *http.Request, code result.Code, msg string) {
	Render(w, r, result.Fail[any](code, msg), http.StatusOK)
}

// ValidationMessage собирает человекочитаемое описание ошибок валидации.
func ValidationMessage(errs validator.ValidationErrors) string {
	var msgs []string
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid e-mail", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
