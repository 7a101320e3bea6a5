package services

import (
	"context"
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/Renal37/delux-perfumes/internal/memstore"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFixture(now time.Time) []models.Order {
	yesterday := now.AddDate(0, 0, -1)

	return []models.Order{
		{ID: "#A", Status: models.StatusPending, Total: 20, CreatedAt: now},
		{ID: "#B", Status: models.StatusPending, Total: 30, CreatedAt: yesterday},
		{ID: "#C", Status: models.StatusPending, Total: 50, CreatedAt: yesterday},
		{ID: "#D", Status: models.StatusDelivered, Total: 40, CreatedAt: yesterday},
		{ID: "#E", Status: models.StatusDelivered, Total: 40, CreatedAt: yesterday},
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	stats := ComputeStats(statsFixture(now), now, time.UTC)

	assert.Equal(t, models.Stats{
		Total:        5,
		Pending:      3,
		Delivered:    2,
		TotalRevenue: 180,
		TodayOrders:  1,
		TodayRevenue: 20,
	}, stats)
	assert.Equal(t, stats.Total, stats.Pending+stats.Processing+stats.Shipped+stats.Delivered+stats.Cancelled)
}

func TestComputeStatsEmpty(t *testing.T) {
	assert.Equal(t, models.Stats{}, ComputeStats(nil, time.Now(), time.UTC))
}

func TestComputeStatsIncludesCancelledRevenue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: "#A", Status: models.StatusCancelled, Total: 110, CreatedAt: now},
		{ID: "#B", Status: models.StatusShipped, Total: 0.1, CreatedAt: now},
		{ID: "#C", Status: models.StatusProcessing, Total: 0.2, CreatedAt: now},
	}

	stats := ComputeStats(orders, now, time.UTC)

	assert.Equal(t, 1, stats.Cancelled)
	assert.Equal(t, 1, stats.Shipped)
	assert.Equal(t, 1, stats.Processing)
	assert.InDelta(t, 110.3, stats.TotalRevenue, 1e-9)
	assert.Equal(t, 3, stats.TodayOrders)
}

func TestComputeStatsTodayUsesLocation(t *testing.T) {
	dubai := time.FixedZone("GST", 4*60*60)
	// 2024-05-01 22:00 UTC это уже 2 мая в Дубае
	now := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: "#A", Status: models.StatusPending, Total: 10, CreatedAt: time.Date(2024, 5, 1, 19, 30, 0, 0, time.UTC)},
		{ID: "#B", Status: models.StatusPending, Total: 15, CreatedAt: time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)},
	}

	inUTC := ComputeStats(orders, now, time.UTC)
	assert.Equal(t, 2, inUTC.TodayOrders)

	inDubai := ComputeStats(orders, now, dubai)
	assert.Equal(t, 1, inDubai.TodayOrders)
	assert.Equal(t, 15.0, inDubai.TodayRevenue)
}

func TestComputeStatsRevenueStaysFinite(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: "#A", Status: models.StatusPending, Total: 1e308, CreatedAt: now},
		{ID: "#B", Status: models.StatusPending, Total: 1e308, CreatedAt: now},
		{ID: "#C", Status: models.StatusPending, Total: math.Inf(1), CreatedAt: now},
		{ID: "#D", Status: models.StatusPending, Total: math.NaN(), CreatedAt: now},
	}

	stats := ComputeStats(orders, now, time.UTC)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 4, stats.TodayOrders)
	assert.Equal(t, math.MaxFloat64, stats.TotalRevenue)
	assert.Equal(t, math.MaxFloat64, stats.TodayRevenue)

	_, err := json.Marshal(stats)
	assert.NoError(t, err)
}

func TestStatsService(t *testing.T) {
	store := memstore.New()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, order := range statsFixture(now) {
		require.NoError(t, store.InsertOrder(context.Background(), order))
	}

	service := NewStatsService(store, time.UTC)
	service.now = func() time.Time { return now }

	stats, err := service.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, 180.0, stats.TotalRevenue)

	_, err = store.RemoveOrder(context.Background(), "#A")
	require.NoError(t, err)

	stats, err = service.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 160.0, stats.TotalRevenue)
	assert.Zero(t, stats.TodayOrders)
}

func TestStatsServiceStorageFailure(t *testing.T) {
	service := NewStatsService(failingOrderStorage{memstore.New()}, time.UTC)

	_, err := service.GetStats(context.Background())

	var persistenceErr *PersistenceError
	assert.ErrorAs(t, err, &persistenceErr)
}
