package services

import (
	"context"
	"math"
	"time"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StatsService считает сводную статистику по заказам
type StatsService struct {
	storage  statsStorage
	location *time.Location
	now      func() time.Time
}

type statsStorage interface {
	FindOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
}

func NewStatsService(storage statsStorage, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{storage: storage, location: loc, now: time.Now}
}

// GetStats читает текущий набор заказов и агрегирует его
func (s *StatsService) GetStats(ctx context.Context) (models.Stats, error) {
	orders, err := s.storage.FindOrders(ctx, models.OrderFilter{})
	if err != nil {
		return models.Stats{}, wrapStorageError("load orders for stats", err)
	}

	return ComputeStats(orders, s.now(), s.location), nil
}

// ComputeStats агрегирует заказы: количество по статусам, выручку и срез за текущие сутки.
// Сутки определяются по now в часовом поясе loc.
func ComputeStats(orders []models.Order, now time.Time, loc *time.Location) models.Stats {
	var stats models.Stats

	dayStart, dayEnd := dayBounds(now, loc)
	revenue := decimal.Zero
	todayRevenue := decimal.Zero

	for _, order := range orders {
		stats.Total++

		switch order.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusProcessing:
			stats.Processing++
		case models.StatusShipped:
			stats.Shipped++
		case models.StatusDelivered:
			stats.Delivered++
		case models.StatusCancelled:
			stats.Cancelled++
		}

		today := !order.CreatedAt.Before(dayStart) && order.CreatedAt.Before(dayEnd)
		if today {
			stats.TodayOrders++
		}

		// decimal.NewFromFloat паникует на NaN и бесконечностях.
		if math.IsNaN(order.Total) || math.IsInf(order.Total, 0) {
			logger.Log.Warn("order with non-finite total skipped in revenue", zap.String("orderID", order.ID))
			continue
		}

		total := decimal.NewFromFloat(order.Total)
		revenue = revenue.Add(total)
		if today {
			todayRevenue = todayRevenue.Add(total)
		}
	}

	stats.TotalRevenue = finiteFloat(revenue)
	stats.TodayRevenue = finiteFloat(todayRevenue)

	return stats
}

// finiteFloat переводит сумму в float64, ограничивая её диапазоном конечных значений.
func finiteFloat(amount decimal.Decimal) float64 {
	value := amount.InexactFloat64()
	switch {
	case math.IsInf(value, 1):
		return math.MaxFloat64
	case math.IsInf(value, -1):
		return -math.MaxFloat64
	}
	return value
}
