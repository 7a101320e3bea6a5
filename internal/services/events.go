package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/models"
	"go.uber.org/zap"
)

const (
	eventDeliveryAttempts = 3
	eventRetryDelay       = time.Second
)

// Publisher доставляет сообщение брокеру.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type eventQueue interface {
	Enqueue(job Job) error
	ScheduleJob(job Job, delay time.Duration)
}

// EventDispatcher отправляет события заказов в фоне через очередь заданий.
type EventDispatcher struct {
	queue     eventQueue
	publisher Publisher
}

func NewEventDispatcher(queue eventQueue, publisher Publisher) *EventDispatcher {
	return &EventDispatcher{queue: queue, publisher: publisher}
}

// Notify ставит событие в очередь и сразу возвращает управление.
func (d *EventDispatcher) Notify(event models.OrderEvent) {
	body, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("failed to encode order event", zap.Error(err))
		return
	}

	if err := d.queue.Enqueue(d.deliver(event, body, 1)); err != nil {
		logger.Log.Warn("order event dropped",
			zap.String("type", string(event.Type)),
			zap.String("orderID", event.OrderID),
			zap.Error(err),
		)
	}
}

// deliver возвращает задание публикации. При ошибке задание перепланируется
// с линейно растущей задержкой, пока не исчерпаны попытки.
func (d *EventDispatcher) deliver(event models.OrderEvent, body []byte, attempt int) Job {
	return func(ctx context.Context) {
		err := d.publisher.Publish(ctx, string(event.Type), body)
		if err == nil {
			logger.Log.Debug("order event published",
				zap.String("type", string(event.Type)),
				zap.String("orderID", event.OrderID),
			)
			return
		}

		if attempt >= eventDeliveryAttempts {
			logger.Log.Error("order event delivery failed",
				zap.String("type", string(event.Type)),
				zap.String("orderID", event.OrderID),
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return
		}

		logger.Log.Warn("order event delivery failed, retrying",
			zap.String("orderID", event.OrderID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		d.queue.ScheduleJob(d.deliver(event, body, attempt+1), time.Duration(attempt)*eventRetryDelay)
	}
}
