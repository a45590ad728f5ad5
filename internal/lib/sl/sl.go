// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель: упростить формирование структурированных полей лога
// для ошибок и неуспешных результатов сервисов.
package sl

import (
	"log/slog"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
)

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to save state", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Fail возвращает группу "error" с кодом и сообщением неуспешного результата.
func Fail(e *result.Error) slog.Attr {
	if e == nil {
		return slog.String("error", "unknown")
	}
	return slog.Group("error",
		slog.String("code", string(e.Code)),
		slog.String("message", e.Message),
	)
}
