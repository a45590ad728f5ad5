// Package events доставляет изменения хранилища и напоминания подписчикам:
// в журнал или в обменник AMQP.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/pandda-console/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/pandda-console/internal/lib/sl"
	"github.com/magabrotheeeer/pandda-console/internal/storage/mockdb"
)

// Publisher публикует сообщение с ключом маршрутизации key.
type Publisher interface {
	Publish(ctx context.Context, key string, msg any) error
}

// LogPublisher пишет сообщения в журнал. Используется, когда брокер выключен.
type LogPublisher struct {
	log *slog.Logger
}

// NewLogPublisher создает LogPublisher.
func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish пишет сообщение в журнал с уровнем Info.
func (p *LogPublisher) Publish(ctx context.Context, key string, msg any) error {
	p.log.InfoContext(ctx, "event", slog.String("key", key), slog.Any("message", msg))
	return nil
}

// AMQPPublisher публикует сообщения в обменник брокера.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       rabbitmq.Channel
	exchange string
}

// NewAMQPPublisher создает AMQPPublisher поверх открытого канала.
func NewAMQPPublisher(ch rabbitmq.Channel, exchange string) *AMQPPublisher {
	return &AMQPPublisher{ch: ch, exchange: exchange}
}

// Publish публикует msg в JSON. Канал AMQP не рассчитан на параллельную
// публикацию, поэтому вызовы сериализуются.
func (p *AMQPPublisher) Publish(ctx context.Context, key string, msg any) error {
	const op = "events.AMQPPublisher.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, key, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ChangeMessage тело сообщения об изменении таблицы.
type ChangeMessage struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    string `json:"id"`
	At    string `json:"at"`
}

// Hook возвращает обработчик мутаций хранилища, публикующий их с ключом change.
// Ошибки публикации только пишутся в журнал: мутация уже сохранена.
func Hook(pub Publisher, log *slog.Logger) mockdb.Hook {
	return func(ctx context.Context, c mockdb.Change) {
		msg := ChangeMessage{
			Table: c.Table,
			Op:    c.Op,
			ID:    c.ID,
			At:    c.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		}
		if err := pub.Publish(ctx, rabbitmq.RoutingChange, msg); err != nil {
			log.Error("failed to publish change",
				slog.String("op", "events.Hook"),
				slog.String("table", c.Table),
				slog.String("id", c.ID),
				sl.Err(err))
		}
	}
}
