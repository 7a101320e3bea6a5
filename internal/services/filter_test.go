package services

import (
	"testing"
	"time"

	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderFilter(t *testing.T) {
	dubai := time.FixedZone("GST", 4*60*60)

	t.Run("Пустой запрос", func(t *testing.T) {
		filter, err := ParseOrderFilter(models.OrderQuery{}, time.UTC)
		require.NoError(t, err)
		assert.True(t, filter.IsEmpty())
	})

	t.Run("Статус и покупатель", func(t *testing.T) {
		filter, err := ParseOrderFilter(models.OrderQuery{Status: " Shipped ", Customer: " ann "}, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, models.StatusShipped, filter.Status)
		assert.Equal(t, "ann", filter.Customer)
		assert.Nil(t, filter.From)
		assert.Nil(t, filter.To)
	})

	t.Run("Дата задает календарные сутки в часовом поясе", func(t *testing.T) {
		filter, err := ParseOrderFilter(models.OrderQuery{Date: "2024-05-01"}, dubai)
		require.NoError(t, err)
		require.NotNil(t, filter.From)
		require.NotNil(t, filter.To)

		assert.True(t, filter.From.Equal(time.Date(2024, 4, 30, 20, 0, 0, 0, time.UTC)))
		assert.True(t, filter.To.Equal(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)))
	})

	for _, date := range []string{"01-05-2024", "2024-13-01", "2024-05-01T00:00:00Z", "yesterday"} {
		t.Run("Некорректная дата "+date, func(t *testing.T) {
			_, err := ParseOrderFilter(models.OrderQuery{Date: date}, time.UTC)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "Invalid date. Expected format YYYY-MM-DD", validationErr.Message)
		})
	}
}

func TestOrderFilterMatches(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	order := models.Order{
		Customer:  "Ann Smith",
		Email:     "ann@example.com",
		Status:    models.StatusPending,
		CreatedAt: from,
	}

	testCases := []struct {
		testName string
		filter   models.OrderFilter
		expected bool
	}{
		{testName: "Пустой фильтр", filter: models.OrderFilter{}, expected: true},
		{testName: "Совпадает статус", filter: models.OrderFilter{Status: models.StatusPending}, expected: true},
		{testName: "Другой статус", filter: models.OrderFilter{Status: models.StatusShipped}, expected: false},
		{testName: "Начало суток включено", filter: models.OrderFilter{From: &from, To: &to}, expected: true},
		{testName: "Конец суток исключен", filter: models.OrderFilter{From: &to}, expected: false},
		{testName: "Верхняя граница исключена", filter: models.OrderFilter{To: &from}, expected: false},
		{testName: "Подстрока имени без учета регистра", filter: models.OrderFilter{Customer: "SMITH"}, expected: true},
		{testName: "Подстрока email", filter: models.OrderFilter{Customer: "example.com"}, expected: true},
		{testName: "Нет совпадения по покупателю", filter: models.OrderFilter{Customer: "bob"}, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.filter.Matches(order))
		})
	}
}
