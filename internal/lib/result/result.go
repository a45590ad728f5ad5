// Package result описывает единый формат ответа сервисов и хранилища:
// либо успех с данными, либо неуспех с сообщением и кодом ошибки.
package result

// Code машинно-читаемый код ошибки.
type Code string

// Коды ошибок, возвращаемые хранилищем, сервисами и HTTP-слоем.
const (
	CodeValidation         Code = "VALIDATION"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFKViolation        Code = "FK_VIOLATION"
	CodeList               Code = "ERR_LIST"
	CodeCreate             Code = "ERR_CREATE"
	CodeUpdate             Code = "ERR_UPDATE"
	CodeDelete             Code = "ERR_DELETE"
	CodeGet                Code = "ERR_GET"
	CodeRenew              Code = "ERR_RENEW"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeAuth               Code = "ERR_AUTH"

	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeBadRequest   Code = "BAD_REQUEST"
	CodeRateLimited  Code = "RATE_LIMITED"
)

// Error описание неуспешного результата.
type Error struct {
	Message string `json:"message"`
	Code    Code   `json:"code,omitempty"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return string(e.Code) + ": " + e.Message
}

// Result размеченный вариант Ok(data) | Err(code, message).
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// OK возвращает успешный результат с данными.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail возвращает неуспешный результат с кодом и сообщением.
func Fail[T any](code Code, msg string) Result[T] {
	return Result[T]{Error: &Error{Message: msg, Code: code}}
}

// Forward переносит ошибку из результата другого типа.
func Forward[T, U any](r Result[U]) Result[T] {
	if r.Error == nil {
		return Result[T]{Error: &Error{Message: "unexpected failure"}}
	}
	e := *r.Error
	return Result[T]{Error: &e}
}

// Map преобразует данные успешного результата, ошибку переносит как есть.
func Map[T, U any](r Result[U], fn func(U) (T, error), code Code, msg string) Result[T] {
	if !r.Success {
		return Forward[T](r)
	}
	v, err := fn(r.Data)
	if err != nil {
		return Fail[T](code, msg)
	}
	return OK(v)
}

// Is сообщает, завершился ли результат ошибкой с данным кодом.
func (r Result[T]) Is(code Code) bool {
	return !r.Success && r.Error != nil && r.Error.Code == code
}

// Err возвращает ошибку результата как error, nil для успеха.
func (r Result[T]) Err() error {
	if r.Success || r.Error == nil {
		return nil
	}
	return r.Error
}
