// Package services содержит сервис подписок: оформление с вытеснением
// предыдущей подписки клиента и продление.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/magabrotheeeer/pandda-console/internal/services/crud"
)

const (
	fieldPrice    = "price"
	fieldRenewals = "renewals"

	msgNotFound = "subscription not found"
	msgRenew    = "failed to renew subscription"
)

// SubscriptionService управляет таблицей подписок.
type SubscriptionService struct {
	*crud.Service[models.Subscription, models.SubscriptionInput, models.SubscriptionPatch]
	log  *slog.Logger
	msgs crud.Messages
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(store crud.Store, log *slog.Logger) *SubscriptionService {
	msgs := crud.MessagesFor("subscription", "client and plan are required")
	return &SubscriptionService{
		Service: crud.New[models.Subscription, models.SubscriptionInput, models.SubscriptionPatch](store, models.TableSubscriptions, msgs, log),
		log:     log,
		msgs:    msgs,
	}
}

// Create оформляет подписку. Если у клиента уже есть подписка, её дата
// окончания сначала сдвигается на models.ExpiredDueDate.
//
// Пометка старой подписки и вставка новой выполняются двумя отдельными вызовами хранилища,
// поэтому параллельные вызовы для одного клиента могут оставить две
// действующие подписки.
func (s *SubscriptionService) Create(ctx context.Context, in models.SubscriptionInput) (res result.Result[models.Subscription]) {
	const op = "subscriptions.create"
	defer crud.Guard(s.log, op, result.CodeCreate, s.msgs.Create, &res)

	if !s.Valid(in) {
		return result.Fail[models.Subscription](result.CodeValidation, s.msgs.Validation)
	}

	all := s.Store().List(ctx, models.TableSubscriptions)
	if !all.Success {
		s.log.Warn("failed to list subscriptions", slog.String("op", op), sl.Fail(all.Error))
	}
	for _, prev := range all.Data {
		if prev.Str(models.FieldClientID) != in.ClientID {
			continue
		}
		expired := s.Store().Update(ctx, models.TableSubscriptions, prev.ID(), models.Record{
			models.FieldDueDate: models.ExpiredDueDate.Format(time.RFC3339Nano),
		})
		if !expired.Success {
			s.log.Warn("failed to expire previous subscription",
				slog.String("op", op), slog.String("id", prev.ID()), sl.Fail(expired.Error))
		}
		break
	}

	rec, err := models.Encode(in)
	if err != nil {
		s.log.Error("failed to encode input", slog.String("op", op), sl.Err(err))
		return result.Fail[models.Subscription](result.CodeCreate, s.msgs.Create)
	}
	return s.CreateRecord(ctx, rec)
}

// Renew продлевает подписку: подставляет новую дату и цену (или оставляет
// текущие) и увеличивает счётчик продлений на единицу.
func (s *SubscriptionService) Renew(ctx context.Context, id string, req models.RenewRequest) (res result.Result[models.Subscription]) {
	const op = "subscriptions.renew"
	defer crud.Guard(s.log, op, result.CodeRenew, msgRenew, &res)

	cur := s.Store().Read(ctx, models.TableSubscriptions, id)
	if !cur.Success || cur.Data == nil {
		return result.Fail[models.Subscription](result.CodeNotFound, msgNotFound)
	}

	patch := models.Record{
		models.FieldDueDate: cur.Data[models.FieldDueDate],
		fieldPrice:          cur.Data[fieldPrice],
		fieldRenewals:       renewals(cur.Data[fieldRenewals]) + 1,
	}
	if req.DueDate != nil {
		patch[models.FieldDueDate] = req.DueDate.UTC().Format(time.RFC3339Nano)
	}
	if req.Price != nil {
		patch[fieldPrice] = *req.Price
	}

	updated := s.UpdateRecord(ctx, id, patch)
	if !updated.Success && !updated.Is(result.CodeNotFound) {
		return result.Fail[models.Subscription](result.CodeRenew, msgRenew)
	}
	return updated
}

// renewals приводит счётчик продлений к int: в памяти он int, после
// загрузки из JSON приходит float64.
func renewals(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
