package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/Renal37/delux-perfumes/internal/database"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string, createdAt time.Time) models.Order {
	return models.Order{
		ID:        id,
		Customer:  "ann",
		Email:     "ann@example.com",
		Items:     []models.LineItem{{Name: "Rose", Quantity: 2, Price: 50}},
		Subtotal:  100,
		Shipping:  10,
		Total:     110,
		Status:    models.StatusPending,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestInsertOrderDuplicate(t *testing.T) {
	store := New()
	order := testOrder("#A", time.Now())

	require.NoError(t, store.InsertOrder(context.Background(), order))
	assert.ErrorIs(t, store.InsertOrder(context.Background(), order), database.ErrDuplicateOrder)
}

func TestOrdersAreCopied(t *testing.T) {
	store := New()
	order := testOrder("#A", time.Now())
	require.NoError(t, store.InsertOrder(context.Background(), order))

	order.Items[0].Quantity = 100

	found, err := store.FindOrder(context.Background(), "#A")
	require.NoError(t, err)
	assert.Equal(t, 2, found.Items[0].Quantity)

	found.Items[0].Name = "Oud"

	again, err := store.FindOrder(context.Background(), "#A")
	require.NoError(t, err)
	assert.Equal(t, "Rose", again.Items[0].Name)
}

func TestFindOrderMissing(t *testing.T) {
	order, err := New().FindOrder(context.Background(), "#A")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestFindOrdersNewestFirst(t *testing.T) {
	store := New()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertOrder(context.Background(), testOrder("#B", base)))
	require.NoError(t, store.InsertOrder(context.Background(), testOrder("#C", base.Add(time.Minute))))
	require.NoError(t, store.InsertOrder(context.Background(), testOrder("#A", base)))

	orders, err := store.FindOrders(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "#C", orders[0].ID)
	assert.Equal(t, "#B", orders[1].ID)
	assert.Equal(t, "#A", orders[2].ID)
}

func TestReplaceOrderKeepsImmutableFields(t *testing.T) {
	store := New()
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.InsertOrder(context.Background(), testOrder("#A", createdAt)))

	changed := testOrder("#A", createdAt.Add(time.Hour))
	changed.Status = models.StatusShipped
	changed.Total = 1
	changed.Items = nil
	changed.UpdatedAt = createdAt.Add(time.Hour)

	found, err := store.ReplaceOrder(context.Background(), changed)
	require.NoError(t, err)
	assert.True(t, found)

	stored, err := store.FindOrder(context.Background(), "#A")
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
	assert.Equal(t, 110.0, stored.Total)
	assert.Len(t, stored.Items, 1)
	assert.Equal(t, createdAt, stored.CreatedAt)
	assert.Equal(t, createdAt.Add(time.Hour), stored.UpdatedAt)

	found, err = store.ReplaceOrder(context.Background(), testOrder("#B", createdAt))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRemoveOrder(t *testing.T) {
	store := New()
	require.NoError(t, store.InsertOrder(context.Background(), testOrder("#A", time.Now())))

	found, err := store.RemoveOrder(context.Background(), "#A")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.RemoveOrder(context.Background(), "#A")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserEmailConflict(t *testing.T) {
	store := New()

	require.NoError(t, store.InsertUser(context.Background(), models.User{ID: "1", Email: "ann@example.com"}))
	require.NoError(t, store.InsertUser(context.Background(), models.User{ID: "2", Email: "bob@example.com"}))

	assert.ErrorIs(t, store.InsertUser(context.Background(), models.User{ID: "3", Email: "Ann@Example.com"}), database.ErrDuplicateUser)

	_, err := store.ReplaceUser(context.Background(), models.User{ID: "2", Email: "ann@example.com"})
	assert.ErrorIs(t, err, database.ErrDuplicateUser)

	found, err := store.ReplaceUser(context.Background(), models.User{ID: "1", Email: "ann@example.com", Name: "Ann"})
	require.NoError(t, err)
	assert.True(t, found)
}
