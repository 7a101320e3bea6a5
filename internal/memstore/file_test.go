package memstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "delux-data.json")
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.InsertOrder(ctx, testOrder("#A", createdAt)))
	require.NoError(t, store.InsertOrder(ctx, testOrder("#B", createdAt)))
	removed, err := store.RemoveOrder(ctx, "#B")
	require.NoError(t, err)
	require.True(t, removed)
	require.NoError(t, store.InsertProduct(ctx, models.Product{ID: "p1", Name: "Rose", Price: 50, Category: models.CategoryForHer, CreatedAt: createdAt}))
	require.NoError(t, store.InsertUser(ctx, models.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Hash: "secret-hash", CreatedAt: createdAt}))

	reopened, err := Open(path)
	require.NoError(t, err)

	order, err := reopened.FindOrder(ctx, "#A")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, 110.0, order.Total)
	assert.Equal(t, []models.LineItem{{Name: "Rose", Quantity: 2, Price: 50}}, order.Items)
	assert.True(t, order.CreatedAt.Equal(createdAt))

	missing, err := reopened.FindOrder(ctx, "#B")
	require.NoError(t, err)
	assert.Nil(t, missing)

	product, err := reopened.FindProduct(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Rose", product.Name)

	user, err := reopened.FindUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "secret-hash", user.Hash)
}

func TestOpenMissingFile(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	orders, err := store.FindOrders(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delux-data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"orders":`), 0o600))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestFailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.Mkdir(dir, 0o700))

	store, err := Open(filepath.Join(dir, "delux-data.json"))
	require.NoError(t, err)
	require.NoError(t, store.InsertOrder(ctx, testOrder("#A", time.Now())))

	// Без каталога временный файл не создаётся.
	require.NoError(t, os.RemoveAll(dir))

	testCases := []struct {
		testName string
		mutate   func() error
	}{
		{
			testName: "Новый заказ",
			mutate:   func() error { return store.InsertOrder(ctx, testOrder("#B", time.Now())) },
		},
		{
			testName: "Удаление заказа",
			mutate: func() error {
				_, err := store.RemoveOrder(ctx, "#A")
				return err
			},
		},
		{
			testName: "Смена статуса",
			mutate: func() error {
				order := testOrder("#A", time.Now())
				order.Status = models.StatusCancelled
				_, err := store.ReplaceOrder(ctx, order)
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Error(t, tc.mutate())

			orders, err := store.FindOrders(ctx, models.OrderFilter{})
			require.NoError(t, err)
			require.Len(t, orders, 1)
			assert.Equal(t, "#A", orders[0].ID)
			assert.Equal(t, models.StatusPending, orders[0].Status)
		})
	}
}
