// Package crud содержит общую часть сервисов данных: типизированный доступ
// к одной таблице хранилища с проверкой обязательных полей и перехватом паник.
package crud

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
)

// Store описывает операции хранилища над таблицами записей.
type Store interface {
	List(ctx context.Context, table string) result.Result[[]models.Record]
	Create(ctx context.Context, table string, rec models.Record) result.Result[models.Record]
	Read(ctx context.Context, table, id string) result.Result[models.Record]
	Update(ctx context.Context, table, id string, patch models.Record) result.Result[models.Record]
	Delete(ctx context.Context, table, id string) result.Result[models.Record]
}

// Messages тексты ошибок сервиса конкретной сущности.
type Messages struct {
	Validation string
	List       string
	Create     string
	Update     string
	Delete     string
	Get        string
}

// MessagesFor строит стандартные тексты ошибок для сущности noun.
func MessagesFor(noun, validation string) Messages {
	return Messages{
		Validation: validation,
		List:       fmt.Sprintf("failed to list %ss", noun),
		Create:     fmt.Sprintf("failed to create %s", noun),
		Update:     fmt.Sprintf("failed to update %s", noun),
		Delete:     fmt.Sprintf("failed to delete %s", noun),
		Get:        fmt.Sprintf("failed to get %s", noun),
	}
}

// Service типизированные операции над одной таблицей.
// T задаёт сущность, In данные создания, P частичный патч.
type Service[T, In, P any] struct {
	store    Store
	table    string
	msgs     Messages
	log      *slog.Logger
	validate *validator.Validate
}

// New создает сервис таблицы table.
func New[T, In, P any](store Store, table string, msgs Messages, log *slog.Logger) *Service[T, In, P] {
	return &Service[T, In, P]{
		store:    store,
		table:    table,
		msgs:     msgs,
		log:      log,
		validate: validator.New(),
	}
}

// Store возвращает хранилище сервиса для операций, которых нет в общем наборе.
func (s *Service[T, In, P]) Store() Store { return s.store }

// Table возвращает имя таблицы сервиса.
func (s *Service[T, In, P]) Table() string { return s.table }

// Guard перехватывает панику операции op и подменяет результат ошибкой code.
// Вызывается через defer.
func Guard[T any](log *slog.Logger, op string, code result.Code, msg string, res *result.Result[T]) {
	if r := recover(); r != nil {
		log.Error("operation panicked", slog.String("op", op), slog.Any("panic", r))
		*res = result.Fail[T](code, msg)
	}
}

// Valid проверяет обязательные поля входных данных.
func (s *Service[T, In, P]) Valid(in In) bool {
	return s.validate.Struct(in) == nil
}

// List возвращает все сущности таблицы.
func (s *Service[T, In, P]) List(ctx context.Context) (res result.Result[[]T]) {
	op := s.table + ".list"
	defer Guard(s.log, op, result.CodeList, s.msgs.List, &res)

	recs := s.store.List(ctx, s.table)
	if !recs.Success {
		s.log.Warn("store list failed", slog.String("op", op), sl.Fail(recs.Error))
		return result.Fail[[]T](result.CodeList, s.msgs.List)
	}
	return s.decodeAll(op, recs.Data, result.CodeList, s.msgs.List)
}

// Get возвращает сущность по id или nil, если её нет.
func (s *Service[T, In, P]) Get(ctx context.Context, id string) (res result.Result[*T]) {
	op := s.table + ".get"
	defer Guard(s.log, op, result.CodeGet, s.msgs.Get, &res)

	rec := s.store.Read(ctx, s.table, id)
	if !rec.Success {
		s.log.Warn("store read failed", slog.String("op", op), sl.Fail(rec.Error))
		return result.Fail[*T](result.CodeGet, s.msgs.Get)
	}
	if rec.Data == nil {
		return result.OK[*T](nil)
	}
	v, err := models.Decode[T](rec.Data)
	if err != nil {
		s.log.Error("failed to decode record", slog.String("op", op), sl.Err(err))
		return result.Fail[*T](result.CodeGet, s.msgs.Get)
	}
	return result.OK(&v)
}

// Create проверяет обязательные поля и сохраняет новую сущность.
func (s *Service[T, In, P]) Create(ctx context.Context, in In) (res result.Result[T]) {
	op := s.table + ".create"
	defer Guard(s.log, op, result.CodeCreate, s.msgs.Create, &res)

	if !s.Valid(in) {
		return result.Fail[T](result.CodeValidation, s.msgs.Validation)
	}
	rec, err := models.Encode(in)
	if err != nil {
		s.log.Error("failed to encode input", slog.String("op", op), sl.Err(err))
		return result.Fail[T](result.CodeCreate, s.msgs.Create)
	}
	return s.CreateRecord(ctx, rec)
}

// CreateRecord сохраняет уже проверенную запись.
func (s *Service[T, In, P]) CreateRecord(ctx context.Context, rec models.Record) result.Result[T] {
	op := s.table + ".create"
	created := s.store.Create(ctx, s.table, rec)
	if !created.Success {
		s.log.Warn("store create failed", slog.String("op", op), sl.Fail(created.Error))
		return result.Fail[T](result.CodeCreate, s.msgs.Create)
	}
	return s.decode(op, created.Data, result.CodeCreate, s.msgs.Create)
}

// Update накладывает патч на сущность. Отсутствие id даёт NOT_FOUND.
func (s *Service[T, In, P]) Update(ctx context.Context, id string, patch P) (res result.Result[T]) {
	op := s.table + ".update"
	defer Guard(s.log, op, result.CodeUpdate, s.msgs.Update, &res)

	rec, err := models.Encode(patch)
	if err != nil {
		s.log.Error("failed to encode patch", slog.String("op", op), sl.Err(err))
		return result.Fail[T](result.CodeUpdate, s.msgs.Update)
	}
	return s.UpdateRecord(ctx, id, rec)
}

// UpdateRecord накладывает на сущность произвольный патч.
func (s *Service[T, In, P]) UpdateRecord(ctx context.Context, id string, patch models.Record) result.Result[T] {
	op := s.table + ".update"
	updated := s.store.Update(ctx, s.table, id, patch)
	if updated.Is(result.CodeNotFound) {
		return result.Forward[T](updated)
	}
	if !updated.Success {
		s.log.Warn("store update failed", slog.String("op", op), sl.Fail(updated.Error))
		return result.Fail[T](result.CodeUpdate, s.msgs.Update)
	}
	return s.decode(op, updated.Data, result.CodeUpdate, s.msgs.Update)
}

// Delete удаляет сущность и возвращает её. Отсутствие id даёт NOT_FOUND.
func (s *Service[T, In, P]) Delete(ctx context.Context, id string) (res result.Result[T]) {
	op := s.table + ".delete"
	defer Guard(s.log, op, result.CodeDelete, s.msgs.Delete, &res)

	deleted := s.store.Delete(ctx, s.table, id)
	if deleted.Is(result.CodeNotFound) {
		return result.Forward[T](deleted)
	}
	if !deleted.Success {
		s.log.Warn("store delete failed", slog.String("op", op), sl.Fail(deleted.Error))
		return result.Fail[T](result.CodeDelete, s.msgs.Delete)
	}
	return s.decode(op, deleted.Data, result.CodeDelete, s.msgs.Delete)
}

func (s *Service[T, In, P]) decode(op string, rec models.Record, code result.Code, msg string) result.Result[T] {
	v, err := models.Decode[T](rec)
	if err != nil {
		s.log.Error("failed to decode record", slog.String("op", op), sl.Err(err))
		return result.Fail[T](code, msg)
	}
	return result.OK(v)
}

func (s *Service[T, In, P]) decodeAll(op string, recs []models.Record, code result.Code, msg string) result.Result[[]T] {
	out, err := models.DecodeAll[T](recs)
	if err != nil {
		s.log.Error("failed to decode records", slog.String("op", op), sl.Err(err))
		return result.Fail[[]T](code, msg)
	}
	return result.OK(out)
}
