package services

import (
	"strings"
	"time"

	"github.com/Renal37/delux-perfumes/internal/models"
)

// DateLayout формат параметра date в строке запроса.
const DateLayout = "2006-01-02"

// ParseOrderFilter преобразует параметры строки запроса в фильтр.
// Дата трактуется как календарные сутки [00:00, 00:00 следующего дня) в зоне loc.
func ParseOrderFilter(query models.OrderQuery, loc *time.Location) (models.OrderFilter, error) {
	filter := models.OrderFilter{
		Status:   models.OrderStatus(strings.TrimSpace(query.Status)),
		Customer: strings.TrimSpace(query.Customer),
	}

	if date := strings.TrimSpace(query.Date); date != "" {
		from, err := time.ParseInLocation(DateLayout, date, loc)
		if err != nil {
			return models.OrderFilter{}, newValidationError("Invalid date. Expected format YYYY-MM-DD")
		}
		to := from.AddDate(0, 0, 1)
		filter.From = &from
		filter.To = &to
	}

	return filter, nil
}

// dayBounds возвращает границы календарных суток, содержащих t, в зоне loc.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
