// Package services рассылает напоминания о подписках, срок которых скоро истекает.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/pandda-console/internal/events"
	"github.com/magabrotheeeer/pandda-console/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/pandda-console/internal/lib/result"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/models"
	"github.com/robfig/cron/v3"
)

// SubscriptionLister отдаёт все подписки.
type SubscriptionLister interface {
	List(ctx context.Context) result.Result[[]models.Subscription]
}

// Reminder тело сообщения upcoming.
type Reminder struct {
	SubscriptionID string    `json:"subscriptionId"`
	ClientID       string    `json:"clientId"`
	PlanID         string    `json:"planId"`
	DueDate        time.Time `json:"dueDate"`
	Price          float64   `json:"price"`
}

// ReminderService ищет подписки, истекающие в пределах окна, и публикует напоминания.
type ReminderService struct {
	subs   SubscriptionLister
	pub    events.Publisher
	window time.Duration
	log    *slog.Logger
	now    func() time.Time
}

// NewReminderService создает новый экземпляр ReminderService.
func NewReminderService(subs SubscriptionLister, pub events.Publisher, window time.Duration, log *slog.Logger) *ReminderService {
	return &ReminderService{
		subs:   subs,
		pub:    pub,
		window: window,
		log:    log,
		now:    time.Now,
	}
}

// Due возвращает подписки, дата окончания которых попадает в [now, now+window].
// Вытесненные подписки и подписки без даты пропускаются.
func (s *ReminderService) Due(ctx context.Context) ([]models.Subscription, error) {
	const op = "reminder.Due"
	res := s.subs.List(ctx)
	if !res.Success {
		return nil, fmt.Errorf("%s: %w", op, res.Err())
	}

	now := s.now()
	until := now.Add(s.window)
	var due []models.Subscription
	for _, sub := range res.Data {
		if sub.DueDate == nil || sub.Expired() {
			continue
		}
		if sub.DueDate.Before(now) || sub.DueDate.After(until) {
			continue
		}
		due = append(due, sub)
	}
	return due, nil
}

// RunOnce публикует по одному напоминанию на каждую подходящую подписку
// и возвращает число опубликованных.
func (s *ReminderService) RunOnce(ctx context.Context) int {
	s.log.Info("starting search for subscriptions due soon")
	due, err := s.Due(ctx)
	if err != nil {
		s.log.Error("failed to find subscriptions", sl.Err(err))
		return 0
	}
	if len(due) == 0 {
		s.log.Info("no subscriptions due soon")
		return 0
	}
	s.log.Info("found subscriptions due soon", "count", len(due))

	sent := 0
	for _, sub := range due {
		msg := Reminder{
			SubscriptionID: sub.ID,
			ClientID:       sub.ClientID,
			PlanID:         sub.PlanID,
			DueDate:        *sub.DueDate,
			Price:          sub.Price,
		}
		if err := s.pub.Publish(ctx, rabbitmq.RoutingUpcoming, msg); err != nil {
			s.log.Error("failed to publish reminder", slog.String("subscription", sub.ID), sl.Err(err))
			continue
		}
		sent++
	}
	return sent
}

// Start запускает RunOnce по расписанию schedule (синтаксис cron или @every).
// Планировщик останавливается при отмене ctx.
func (s *ReminderService) Start(ctx context.Context, schedule string) (*cron.Cron, error) {
	const op = "reminder.Start"
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { s.RunOnce(ctx) }); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		s.log.Info("reminder scheduler stopped")
	}()
	return c, nil
}
